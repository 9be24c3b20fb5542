package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	pricingerrors "dmaxcricket/internal/pricing/errors"
	"dmaxcricket/internal/pricing/repository"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/model"
)

type PricingService interface {
	Quote(ctx context.Context, date string, startTime string, endTime string) (*model.Quote, error)
	CheckAmount(quote *model.Quote, declared float64) error
}

type pricingService struct {
	repo repository.RateRepository
	cfg  *config.Config
}

func NewPricingService(repo repository.RateRepository, cfg *config.Config) PricingService {
	return &pricingService{
		repo: repo,
		cfg:  cfg,
	}
}

// Quote prices a whole-hour range at the active hourly rate. Exactly two
// hours on a Saturday or Sunday get the flat weekend package price instead
// of twice the rate.
func (s *pricingService) Quote(ctx context.Context, date string, startTime string, endTime string) (*model.Quote, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", date))
	}

	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid start_time: %s", startTime))
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid end_time: %s", endTime))
	}

	span := end.Sub(start)
	if span <= 0 {
		return nil, apperrors.InvalidInput("end_time must be after start_time")
	}
	if span%time.Hour != 0 {
		return nil, apperrors.InvalidInput("booking must cover whole hours")
	}
	hours := int(span / time.Hour)

	rate, err := s.repo.FindActiveHourlyRate(ctx)
	if err != nil {
		if errors.Is(err, pricingerrors.ErrNoActiveRate) {
			s.cfg.Log.Error("No active hourly rate configured")
			return nil, apperrors.Configuration("Pricing is not configured")
		}
		return nil, apperrors.Internal("Failed to load pricing", err)
	}

	weekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday

	quote := &model.Quote{
		Hours:      hours,
		HourlyRate: rate.Price,
		Total:      float64(hours) * rate.Price,
		Weekend:    weekend,
	}

	if weekend && hours == 2 {
		quote.Total = s.cfg.WeekendTwoHourTotal
	}

	return quote, nil
}

// CheckAmount compares the customer's declared payment against the quoted
// total within the configured tolerance.
func (s *pricingService) CheckAmount(quote *model.Quote, declared float64) error {
	if math.Abs(declared-quote.Total) <= s.cfg.AmountTolerance {
		return nil
	}

	return apperrors.Conflict("Declared amount does not match the expected total").
		WithDetails(map[string]any{
			"reason":   "amount_mismatch",
			"expected": quote.Total,
			"declared": declared,
		})
}
