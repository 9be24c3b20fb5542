package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "dmaxcricket/internal/bookings/errors"
	"dmaxcricket/internal/bookings/repository"
	"dmaxcricket/internal/bookings/validator"
	customerservice "dmaxcricket/internal/customers/service"
	lockservice "dmaxcricket/internal/locks/service"
	"dmaxcricket/internal/notifications"
	pricingservice "dmaxcricket/internal/pricing/service"
	slotserrors "dmaxcricket/internal/slots/errors"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/model"
	"dmaxcricket/pkg/sanitizer"
	"dmaxcricket/pkg/sealer"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotResolver maps a (date, start) pair to its active slot, satisfied by the
// slot repository.
type SlotResolver interface {
	FindActiveByDateAndStart(ctx context.Context, date string, startTime string) (*model.Slot, error)
}

// TokenVerifier checks a payment-window token, satisfied by the sealer.
type TokenVerifier interface {
	Verify(token string, maxAge time.Duration) error
}

type BookingService interface {
	Submit(ctx context.Context, req *model.BookingRequest) (*model.BookingGroup, error)
	Approve(ctx context.Context, id string) (*model.BookingGroup, error)
	Reject(ctx context.Context, id string) (*model.BookingGroup, error)
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	customers customerservice.CustomerService
	pricing   pricingservice.PricingService
	locks     lockservice.LockService
	slots     SlotResolver
	tokens    TokenVerifier
	notifier  notifications.Notifier
	validator *validator.BookingValidator
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	customers customerservice.CustomerService,
	pricing pricingservice.PricingService,
	locks lockservice.LockService,
	slots SlotResolver,
	tokens TokenVerifier,
	notifier notifications.Notifier,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		customers: customers,
		pricing:   pricing,
		locks:     locks,
		slots:     slots,
		tokens:    tokens,
		notifier:  notifier,
		validator: validator,
		cfg:       cfg,
	}
}

// Submit turns a held reservation into a booking group. All persistent steps
// run in one transaction: the customer upsert, the per-hour slot resolution
// and lock ownership checks, the group insert, and the lock cleanup. Any
// failure rolls the whole group back, so a partially booked range can never
// be observed. The operator notification goes out after commit and its
// failure is only logged.
func (s *bookingService) Submit(ctx context.Context, req *model.BookingRequest) (*model.BookingGroup, error) {
	if err := s.tokens.Verify(req.PaymentToken, s.cfg.PaymentWindow); err != nil {
		return nil, s.mapTokenError(err)
	}

	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	var group *model.BookingGroup
	var customer *model.Customer

	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		var err error
		customer, err = s.customers.FindOrCreate(txCtx, req.Name, req.Phone, req.Email)
		if err != nil {
			return err
		}

		quote, err := s.pricing.Quote(txCtx, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if err := s.pricing.CheckAmount(quote, req.Amount); err != nil {
			return err
		}

		used, err := s.repo.ExistsForProofRef(txCtx, req.ProofRef)
		if err != nil {
			return apperrors.Internal("Failed to check proof reference", err)
		}
		if used {
			return apperrors.ConflictWithReason(
				"Payment proof reference is already tied to another booking",
				"proof_ref_already_used",
			)
		}

		slots, err := s.resolveSlots(txCtx, req)
		if err != nil {
			return err
		}

		slotIDs := make([]string, 0, len(slots))
		for _, slot := range slots {
			if err := s.locks.VerifyOwned(txCtx, slot.ID, req.SessionID); err != nil {
				return err
			}
			slotIDs = append(slotIDs, slot.ID)
		}

		// The effective rate absorbs the weekend package discount, so the
		// per-slot prices of a group always sum to the quoted total. The
		// declared amount is what the customer actually paid; it is split
		// evenly across the rows.
		effectiveRate := quote.Total / float64(quote.Hours)
		perSlot := req.Amount / float64(len(slots))
		bookings := make([]*model.Booking, 0, len(slots))
		for _, slot := range slots {
			bookings = append(bookings, &model.Booking{
				CustomerID:    customer.ID,
				SlotID:        slot.ID,
				Date:          req.Date,
				StartTime:     slot.StartTime,
				EndTime:       slot.EndTime,
				SlotPrice:     effectiveRate,
				PaidAmount:    perSlot,
				ProofRef:      req.ProofRef,
				PaymentStatus: model.PaymentStatusManualVerification,
				Status:        model.BookingStatusPending,
			})
		}

		if err := s.repo.CreateMany(txCtx, bookings); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return apperrors.ConflictWithReason("One of the requested slots was just booked", "slot_already_booked")
			}
			return apperrors.Internal("Failed to create booking", err)
		}

		if err := s.locks.ReleaseForBooking(txCtx, req.SessionID, slotIDs); err != nil {
			return apperrors.Internal("Failed to release slot locks", err)
		}

		group = &model.BookingGroup{
			ProofRef:   req.ProofRef,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			TotalPaid:  req.Amount,
			Status:     model.BookingStatusPending,
			SlotCount:  len(bookings),
			CustomerID: customer.ID,
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to submit booking", "proof_ref", req.ProofRef, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking submitted",
		"proof_ref", group.ProofRef,
		"date", group.Date,
		"slots", group.SlotCount,
		"total", group.TotalPaid,
	)

	go s.notifyOperator(group, customer)

	return group, nil
}

// Approve confirms every row of the booking group the given booking belongs
// to, then tells the customer. Notification failures are logged and
// swallowed; the approval stands regardless.
func (s *bookingService) Approve(ctx context.Context, id string) (*model.BookingGroup, error) {
	proofRef, err := s.resolveProofRef(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.repo.UpdateStatusByProofRef(txCtx, proofRef, model.BookingStatusConfirmed, model.PaymentStatusVerified)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to approve booking group", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to approve booking group", "proof_ref", proofRef, "error", err)
		return nil, err
	}

	group, err := s.aggregateGroup(ctx, proofRef)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking group approved", "proof_ref", proofRef, "slots", group.SlotCount)

	go s.notifyCustomer(group)

	return group, nil
}

// Reject marks the whole group rejected. Rejected rows no longer count as
// booked, so the slots become available again.
func (s *bookingService) Reject(ctx context.Context, id string) (*model.BookingGroup, error) {
	proofRef, err := s.resolveProofRef(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		_, err := s.repo.UpdateStatusByProofRef(txCtx, proofRef, model.BookingStatusRejected, model.PaymentStatusRejected)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to reject booking group", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to reject booking group", "proof_ref", proofRef, "error", err)
		return nil, err
	}

	group, err := s.aggregateGroup(ctx, proofRef)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking group rejected", "proof_ref", proofRef, "slots", group.SlotCount)
	return group, nil
}

// Delete removes every row of the group permanently. There is no undo.
func (s *bookingService) Delete(ctx context.Context, id string) error {
	proofRef, err := s.resolveProofRef(ctx, id)
	if err != nil {
		return err
	}

	var deleted int64
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		deleted, err = s.repo.DeleteByProofRef(txCtx, proofRef)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to delete booking group", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to delete booking group", "proof_ref", proofRef, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking group deleted", "proof_ref", proofRef, "deleted", deleted)
	return nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Name = sanitizer.SanitizeName(req.Name)
	req.Email = sanitizer.SanitizeEmail(req.Email)
	req.Phone = sanitizer.SanitizePhone(req.Phone)
}

func (s *bookingService) mapTokenError(err error) error {
	if errors.Is(err, sealer.ErrTokenExpired) {
		return apperrors.PaymentWindowExpired("Payment window has expired, request a new one")
	}
	return apperrors.InvalidToken("Payment token is invalid")
}

// resolveSlots maps each whole hour of the requested range to its active
// slot. Validation has already guaranteed a positive whole-hour range.
func (s *bookingService) resolveSlots(ctx context.Context, req *model.BookingRequest) ([]*model.Slot, error) {
	start, _ := time.Parse("15:04", req.StartTime)
	end, _ := time.Parse("15:04", req.EndTime)
	hours := int(end.Sub(start) / time.Hour)

	slots := make([]*model.Slot, 0, hours)
	for i := 0; i < hours; i++ {
		hour := start.Add(time.Duration(i) * time.Hour).Format("15:04")

		slot, err := s.slots.FindActiveByDateAndStart(ctx, req.Date, hour)
		if err != nil {
			if errors.Is(err, slotserrors.ErrNotFound) {
				return nil, apperrors.NotFound(fmt.Sprintf("No bookable slot at %s on %s", hour, req.Date))
			}
			return nil, apperrors.Internal("Failed to resolve slot", err)
		}

		booked, err := s.repo.ExistsActiveForSlot(ctx, slot.ID)
		if err != nil {
			return nil, apperrors.Internal("Failed to check slot booking state", err)
		}
		if booked {
			return nil, apperrors.ConflictWithReason(
				fmt.Sprintf("Slot at %s is already booked", hour),
				"slot_already_booked",
			)
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

func (s *bookingService) resolveProofRef(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return "", apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return "", apperrors.InvalidInput("Invalid booking ID format")
		}
		return "", apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking.ProofRef, nil
}

func (s *bookingService) aggregateGroup(ctx context.Context, proofRef string) (*model.BookingGroup, error) {
	rows, err := s.repo.FindByProofRef(ctx, proofRef)
	if err != nil {
		return nil, apperrors.Internal("Failed to load booking group", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("Booking group")
	}

	group := &model.BookingGroup{
		ProofRef:   proofRef,
		Date:       rows[0].Date,
		StartTime:  rows[0].StartTime,
		EndTime:    rows[0].EndTime,
		Status:     rows[0].Status,
		SlotCount:  len(rows),
		CustomerID: rows[0].CustomerID,
		CreatedAt:  rows[0].CreatedAt,
	}

	for _, row := range rows {
		group.TotalPaid += row.PaidAmount
		if row.StartTime < group.StartTime {
			group.StartTime = row.StartTime
		}
		if row.EndTime > group.EndTime {
			group.EndTime = row.EndTime
		}
	}

	return group, nil
}

func (s *bookingService) notifyOperator(group *model.BookingGroup, customer *model.Customer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary := notifications.SummaryFromGroup(group, customer)
	if err := s.notifier.NotifyOperator(ctx, summary); err != nil {
		s.cfg.Log.Warn("Operator notification failed", "proof_ref", group.ProofRef, "error", err)
	}
}

func (s *bookingService) notifyCustomer(group *model.BookingGroup) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	customer, err := s.customers.GetByID(ctx, group.CustomerID)
	if err != nil {
		s.cfg.Log.Warn("Customer lookup for notification failed", "proof_ref", group.ProofRef, "error", err)
		return
	}

	summary := notifications.SummaryFromGroup(group, customer)
	if err := s.notifier.NotifyCustomer(ctx, notifications.ChannelEmail, customer.Email, summary); err != nil {
		s.cfg.Log.Warn("Customer email notification failed", "proof_ref", group.ProofRef, "error", err)
	}
	if err := s.notifier.NotifyCustomer(ctx, notifications.ChannelMessaging, customer.Phone, summary); err != nil {
		s.cfg.Log.Warn("Customer messaging notification failed", "proof_ref", group.ProofRef, "error", err)
	}
}
