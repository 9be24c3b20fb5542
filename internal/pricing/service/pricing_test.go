package service

import (
	"context"
	"testing"

	pricingerrors "dmaxcricket/internal/pricing/errors"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/logger"
	"dmaxcricket/pkg/model"
)

type mockRateRepository struct {
	findActiveHourlyRateFunc func(ctx context.Context) (*model.PricingRate, error)
}

func (m *mockRateRepository) FindActiveHourlyRate(ctx context.Context) (*model.PricingRate, error) {
	if m.findActiveHourlyRateFunc != nil {
		return m.findActiveHourlyRateFunc(ctx)
	}
	return &model.PricingRate{DurationHours: 1, Price: 800, IsActive: true}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		AmountTolerance:     0.01,
		WeekendTwoHourTotal: 1500,
	}
}

func TestQuote_WeekdayMultipliesHourlyRate(t *testing.T) {
	service := &pricingService{repo: &mockRateRepository{}, cfg: testConfig()}

	// 2024-06-05 is a Wednesday
	quote, err := service.Quote(context.Background(), "2024-06-05", "14:00", "17:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Hours != 3 {
		t.Errorf("expected 3 hours, got %d", quote.Hours)
	}
	if quote.Total != 2400 {
		t.Errorf("expected total 2400, got %f", quote.Total)
	}
	if quote.Weekend {
		t.Error("Wednesday should not be flagged as weekend")
	}
}

func TestQuote_WeekendTwoHourPackage(t *testing.T) {
	service := &pricingService{repo: &mockRateRepository{}, cfg: testConfig()}

	// 2024-06-08 is a Saturday; two hours get the package price, not 1600
	quote, err := service.Quote(context.Background(), "2024-06-08", "14:00", "16:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !quote.Weekend {
		t.Error("Saturday should be flagged as weekend")
	}
	if quote.Total != 1500 {
		t.Errorf("expected weekend package total 1500, got %f", quote.Total)
	}
}

func TestQuote_WeekendThreeHoursNotDiscounted(t *testing.T) {
	service := &pricingService{repo: &mockRateRepository{}, cfg: testConfig()}

	// 2024-06-09 is a Sunday; the package only applies to exactly two hours
	quote, err := service.Quote(context.Background(), "2024-06-09", "14:00", "17:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Total != 2400 {
		t.Errorf("expected total 2400, got %f", quote.Total)
	}
}

func TestQuote_NoActiveRate(t *testing.T) {
	mockRepo := &mockRateRepository{
		findActiveHourlyRateFunc: func(ctx context.Context) (*model.PricingRate, error) {
			return nil, pricingerrors.ErrNoActiveRate
		},
	}
	service := &pricingService{repo: mockRepo, cfg: testConfig()}

	_, err := service.Quote(context.Background(), "2024-06-05", "14:00", "15:00")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConfiguration {
		t.Errorf("expected code %s, got %s", apperrors.CodeConfiguration, appErr.Code)
	}
}

func TestQuote_InvalidRanges(t *testing.T) {
	service := &pricingService{repo: &mockRateRepository{}, cfg: testConfig()}

	tests := []struct {
		name  string
		date  string
		start string
		end   string
	}{
		{"end before start", "2024-06-05", "16:00", "14:00"},
		{"end equals start", "2024-06-05", "14:00", "14:00"},
		{"partial hour", "2024-06-05", "14:00", "15:30"},
		{"bad date", "2024-13-05", "14:00", "15:00"},
		{"bad start", "2024-06-05", "25:00", "15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Quote(context.Background(), tt.date, tt.start, tt.end); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCheckAmount_WithinTolerance(t *testing.T) {
	service := &pricingService{repo: &mockRateRepository{}, cfg: testConfig()}
	quote := &model.Quote{Total: 1600}

	for _, declared := range []float64{1600, 1600.01, 1599.99} {
		if err := service.CheckAmount(quote, declared); err != nil {
			t.Errorf("declared %f should be accepted: %v", declared, err)
		}
	}
}

func TestCheckAmount_MismatchCarriesExpected(t *testing.T) {
	service := &pricingService{repo: &mockRateRepository{}, cfg: testConfig()}
	quote := &model.Quote{Total: 1500}

	err := service.CheckAmount(quote, 1600)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
	if appErr.Details["reason"] != "amount_mismatch" {
		t.Errorf("expected reason amount_mismatch, got %v", appErr.Details["reason"])
	}
	if appErr.Details["expected"] != 1500.0 {
		t.Errorf("expected details to carry 1500, got %v", appErr.Details["expected"])
	}
}
