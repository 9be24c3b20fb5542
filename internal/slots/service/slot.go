package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	slotserrors "dmaxcricket/internal/slots/errors"
	"dmaxcricket/internal/slots/repository"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/model"
)

// BookingReader is the slice of the booking store the slot inventory needs:
// referential checks before delete and the booked set for a day view.
type BookingReader interface {
	ExistsForSlot(ctx context.Context, slotID string) (bool, error)
	ActiveSlotIDsByDate(ctx context.Context, date string) ([]string, error)
}

// LockReader exposes the live-lock view used when resolving availability.
type LockReader interface {
	SweepExpired(ctx context.Context) (int64, error)
	LiveSlotIDs(ctx context.Context, slotIDs []string) ([]string, error)
}

type SlotService interface {
	Generate(ctx context.Context, req *model.SlotGenerateRequest) (int, error)
	DaySchedule(ctx context.Context, date string) ([]*model.SlotAvailability, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Slot, int64, error)
	ToggleActive(ctx context.Context, id string) (*model.Slot, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type slotService struct {
	repo     repository.SlotRepository
	bookings BookingReader
	locks    LockReader
	cfg      *config.Config
}

func NewSlotService(
	repo repository.SlotRepository,
	bookings BookingReader,
	locks LockReader,
	cfg *config.Config,
) SlotService {
	return &slotService{
		repo:     repo,
		bookings: bookings,
		locks:    locks,
		cfg:      cfg,
	}
}

// Generate creates the missing 1-hour slots for a date. A range whose end is
// not after its start wraps past midnight, so 22:00-02:00 yields four slots.
// Existing (date, start) pairs are skipped, which makes the operation
// idempotent and safe to re-run.
func (s *slotService) Generate(ctx context.Context, req *model.SlotGenerateRequest) (int, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", req.Date))
	}

	start, err := time.Parse("15:04", req.RangeStart)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid range_start: %s", req.RangeStart))
	}
	end, err := time.Parse("15:04", req.RangeEnd)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid range_end: %s", req.RangeEnd))
	}

	span := end.Sub(start)
	if span <= 0 {
		span += 24 * time.Hour
	}
	if span%time.Hour != 0 {
		return 0, apperrors.InvalidInput("range must cover whole hours")
	}

	hours := int(span / time.Hour)
	created := 0

	for i := 0; i < hours; i++ {
		slotStart := start.Add(time.Duration(i) * time.Hour)
		slotEnd := slotStart.Add(time.Hour)

		slot := &model.Slot{
			Date:      req.Date,
			StartTime: slotStart.Format("15:04"),
			EndTime:   slotEnd.Format("15:04"),
			IsActive:  true,
		}

		if err := s.repo.Create(ctx, slot); err != nil {
			if errors.Is(err, slotserrors.ErrDuplicate) {
				continue
			}
			s.cfg.Log.Error("Failed to create slot",
				"date", req.Date,
				"start_time", slot.StartTime,
				"error", err,
			)
			return created, apperrors.Internal("Failed to generate slots", err)
		}
		created++
	}

	s.cfg.Log.Info("Slot generation completed",
		"date", req.Date,
		"range_start", req.RangeStart,
		"range_end", req.RangeEnd,
		"created", created,
		"skipped", hours-created,
	)
	return created, nil
}

// DaySchedule returns the active slots of a date with their taken state. A
// slot counts as taken when a non-rejected booking references it or a live
// lock covers it. Expired locks are swept first so a stale hold never hides
// a free slot.
func (s *slotService) DaySchedule(ctx context.Context, date string) ([]*model.SlotAvailability, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", date))
	}

	if _, err := s.locks.SweepExpired(ctx); err != nil {
		s.cfg.Log.Warn("Failed to sweep expired locks", "error", err)
	}

	slots, err := s.repo.FindActiveByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to list slots", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to retrieve slots", err)
	}
	if len(slots) == 0 {
		return []*model.SlotAvailability{}, nil
	}

	bookedIDs, err := s.bookings.ActiveSlotIDsByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve booked slots", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to resolve availability", err)
	}

	slotIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		slotIDs = append(slotIDs, slot.ID)
	}
	lockedIDs, err := s.locks.LiveSlotIDs(ctx, slotIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to resolve locked slots", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to resolve availability", err)
	}

	taken := make(map[string]bool, len(bookedIDs)+len(lockedIDs))
	for _, id := range bookedIDs {
		taken[id] = true
	}
	for _, id := range lockedIDs {
		taken[id] = true
	}

	schedule := make([]*model.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		schedule = append(schedule, &model.SlotAvailability{
			Slot:  *slot,
			Taken: taken[slot.ID],
		})
	}

	return schedule, nil
}

func (s *slotService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Slot, int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to count slots", "error", err)
		return nil, 0, apperrors.Internal("Failed to count slots", err)
	}

	slots, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list slots", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve slots", err)
	}

	return slots, count, nil
}

func (s *slotService) ToggleActive(ctx context.Context, id string) (*model.Slot, error) {
	slot, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetActive(ctx, id, !slot.IsActive); err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Slot", id)
		}
		return nil, apperrors.Internal("Failed to update slot", err)
	}

	slot.IsActive = !slot.IsActive
	s.cfg.Log.Info("Slot active state toggled", "id", id, "is_active", slot.IsActive)
	return slot, nil
}

func (s *slotService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Slot", id)
		}
		return apperrors.Internal("Failed to deactivate slot", err)
	}

	s.cfg.Log.Info("Slot deactivated", "id", id)
	return nil
}

// Delete removes a slot permanently. A slot referenced by any booking row is
// never deleted; callers get a conflict and should deactivate instead.
func (s *slotService) Delete(ctx context.Context, id string) error {
	if _, err := s.findByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.bookings.ExistsForSlot(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to check slot references", err)
	}
	if referenced {
		return apperrors.ConflictWithReason(
			"Slot has booking history and cannot be deleted; deactivate it instead",
			"referential_conflict",
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Slot", id)
		}
		return apperrors.Internal("Failed to delete slot", err)
	}

	s.cfg.Log.Info("Slot deleted", "id", id)
	return nil
}

func (s *slotService) findByID(ctx context.Context, id string) (*model.Slot, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Slot ID cannot be empty")
	}

	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Slot", id)
		}
		if errors.Is(err, slotserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid slot ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve slot", err)
	}

	return slot, nil
}
