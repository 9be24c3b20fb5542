package service

import (
	"context"
	"errors"
	"time"

	lockserrors "dmaxcricket/internal/locks/errors"
	"dmaxcricket/internal/locks/repository"
	slotserrors "dmaxcricket/internal/slots/errors"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotReader is the slice of the slot inventory the lock flow needs,
// satisfied by the slot repository.
type SlotReader interface {
	FindByID(ctx context.Context, id string) (*model.Slot, error)
}

// BookingChecker reports whether a slot already carries a non-rejected booking.
type BookingChecker interface {
	ExistsActiveForSlot(ctx context.Context, slotID string) (bool, error)
}

type LockService interface {
	Acquire(ctx context.Context, slotID string, sessionID string) (time.Time, error)
	SweepExpired(ctx context.Context) (int64, error)
	LiveSlotIDs(ctx context.Context, slotIDs []string) ([]string, error)
	VerifyOwned(ctx context.Context, slotID string, sessionID string) error
	ReleaseForBooking(ctx context.Context, sessionID string, slotIDs []string) error
}

type lockService struct {
	repo     repository.LockRepository
	slots    SlotReader
	bookings BookingChecker
	cfg      *config.Config
}

func NewLockService(
	repo repository.LockRepository,
	slots SlotReader,
	bookings BookingChecker,
	cfg *config.Config,
) LockService {
	return &lockService{
		repo:     repo,
		slots:    slots,
		bookings: bookings,
		cfg:      cfg,
	}
}

// Acquire takes or refreshes the advisory hold on a slot for one session.
// Re-acquiring a lock the session already holds pushes the expiry forward
// instead of failing, so retrying a stalled checkout keeps the hold alive.
// Two sessions racing for the same free slot are resolved by the unique
// slot_id index; the loser sees a duplicate key and gets a conflict.
func (s *lockService) Acquire(ctx context.Context, slotID string, sessionID string) (time.Time, error) {
	if slotID == "" || sessionID == "" {
		return time.Time{}, apperrors.InvalidInput("Slot ID and session ID are required")
	}

	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) {
			return time.Time{}, apperrors.NotFoundWithID("Slot", slotID)
		}
		if errors.Is(err, slotserrors.ErrInvalidID) {
			return time.Time{}, apperrors.InvalidInput("Invalid slot ID format")
		}
		return time.Time{}, apperrors.Internal("Failed to retrieve slot", err)
	}
	if !slot.IsActive {
		return time.Time{}, apperrors.ConflictWithReason("Slot is not open for booking", "slot_inactive")
	}

	if _, err := s.SweepExpired(ctx); err != nil {
		s.cfg.Log.Warn("Failed to sweep expired locks", "error", err)
	}

	booked, err := s.bookings.ExistsActiveForSlot(ctx, slotID)
	if err != nil {
		return time.Time{}, apperrors.Internal("Failed to check slot booking state", err)
	}
	if booked {
		return time.Time{}, apperrors.ConflictWithReason("Slot is already booked", "slot_already_booked")
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.LockTTL)

	existing, err := s.repo.FindBySlotID(ctx, slotID)
	if err != nil && !errors.Is(err, lockserrors.ErrNotFound) {
		return time.Time{}, apperrors.Internal("Failed to check slot lock state", err)
	}

	if existing != nil && existing.ExpiresAt.After(now) {
		if existing.SessionID != sessionID {
			return time.Time{}, apperrors.ConflictWithReason("Slot is held by another session", "locked_by_other")
		}

		if err := s.repo.UpdateExpiry(ctx, slotID, expiresAt); err != nil {
			return time.Time{}, apperrors.Internal("Failed to refresh slot lock", err)
		}

		s.cfg.Log.Debug("Slot lock refreshed", "slot_id", slotID, "expires_at", expiresAt)
		return expiresAt, nil
	}

	lock := &model.SlotLock{
		SlotID:    slotID,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Insert(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return time.Time{}, apperrors.ConflictWithReason("Slot is held by another session", "locked_by_other")
		}
		return time.Time{}, apperrors.Internal("Failed to acquire slot lock", err)
	}

	s.cfg.Log.Info("Slot lock acquired", "slot_id", slotID, "expires_at", expiresAt)
	return expiresAt, nil
}

func (s *lockService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.cfg.Log.Debug("Expired slot locks swept", "deleted", deleted)
	}
	return deleted, nil
}

func (s *lockService) LiveSlotIDs(ctx context.Context, slotIDs []string) ([]string, error) {
	return s.repo.FindLiveSlotIDs(ctx, slotIDs, time.Now().UTC())
}

// VerifyOwned confirms the session still holds a live lock on the slot. The
// commit path calls this inside the booking transaction so an expired or
// stolen hold fails the whole submission.
func (s *lockService) VerifyOwned(ctx context.Context, slotID string, sessionID string) error {
	lock, err := s.repo.FindBySlotID(ctx, slotID)
	if err != nil {
		if errors.Is(err, lockserrors.ErrNotFound) {
			return apperrors.ConflictWithReason("Slot hold has expired", "lock_invalid_or_expired")
		}
		return apperrors.Internal("Failed to check slot lock", err)
	}

	if lock.SessionID != sessionID || !lock.ExpiresAt.After(time.Now().UTC()) {
		return apperrors.ConflictWithReason("Slot hold has expired", "lock_invalid_or_expired")
	}

	return nil
}

func (s *lockService) ReleaseForBooking(ctx context.Context, sessionID string, slotIDs []string) error {
	return s.repo.DeleteBySessionAndSlotIDs(ctx, sessionID, slotIDs)
}
