package service

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingserrors "dmaxcricket/internal/bookings/errors"
	"dmaxcricket/internal/bookings/validator"
	"dmaxcricket/internal/notifications"
	slotserrors "dmaxcricket/internal/slots/errors"
	"dmaxcricket/pkg/config"
	mongotx "dmaxcricket/pkg/db/mongo"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/logger"
	"dmaxcricket/pkg/model"
	"dmaxcricket/pkg/sealer"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockBookingRepository struct {
	createManyFunc             func(ctx context.Context, bookings []*model.Booking) error
	findByIDFunc               func(ctx context.Context, id string) (*model.Booking, error)
	findByProofRefFunc         func(ctx context.Context, proofRef string) ([]*model.Booking, error)
	updateStatusByProofRefFunc func(ctx context.Context, proofRef string, status string, paymentStatus string) (int64, error)
	deleteByProofRefFunc       func(ctx context.Context, proofRef string) (int64, error)
	findAllFunc                func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error)
	countFunc                  func(ctx context.Context) (int64, error)
	existsActiveForSlotFunc    func(ctx context.Context, slotID string) (bool, error)
	existsForProofRefFunc      func(ctx context.Context, proofRef string) (bool, error)
}

func (m *mockBookingRepository) CreateMany(ctx context.Context, bookings []*model.Booking) error {
	if m.createManyFunc != nil {
		return m.createManyFunc(ctx, bookings)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByProofRef(ctx context.Context, proofRef string) ([]*model.Booking, error) {
	if m.findByProofRefFunc != nil {
		return m.findByProofRefFunc(ctx, proofRef)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatusByProofRef(ctx context.Context, proofRef string, status string, paymentStatus string) (int64, error) {
	if m.updateStatusByProofRefFunc != nil {
		return m.updateStatusByProofRefFunc(ctx, proofRef, status, paymentStatus)
	}
	return 0, nil
}

func (m *mockBookingRepository) DeleteByProofRef(ctx context.Context, proofRef string) (int64, error) {
	if m.deleteByProofRefFunc != nil {
		return m.deleteByProofRefFunc(ctx, proofRef)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockBookingRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockBookingRepository) ExistsForSlot(ctx context.Context, slotID string) (bool, error) {
	return false, nil
}

func (m *mockBookingRepository) ExistsForProofRef(ctx context.Context, proofRef string) (bool, error) {
	if m.existsForProofRefFunc != nil {
		return m.existsForProofRefFunc(ctx, proofRef)
	}
	return false, nil
}

func (m *mockBookingRepository) ExistsActiveForSlot(ctx context.Context, slotID string) (bool, error) {
	if m.existsActiveForSlotFunc != nil {
		return m.existsActiveForSlotFunc(ctx, slotID)
	}
	return false, nil
}

func (m *mockBookingRepository) ActiveSlotIDsByDate(ctx context.Context, date string) ([]string, error) {
	return nil, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(ctx)
}

type mockCustomerService struct {
	findOrCreateFunc func(ctx context.Context, name string, phone string, email string) (*model.Customer, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Customer, error)
}

func (m *mockCustomerService) FindOrCreate(ctx context.Context, name string, phone string, email string) (*model.Customer, error) {
	if m.findOrCreateFunc != nil {
		return m.findOrCreateFunc(ctx, name, phone, email)
	}
	return &model.Customer{ID: "665d2c3e8f1b2a0001000099", Name: name, Phone: phone, Email: email}, nil
}

func (m *mockCustomerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Customer{ID: id, Name: "Test Customer", Phone: "9876543210", Email: "test@example.com"}, nil
}

type mockPricingService struct {
	quoteFunc       func(ctx context.Context, date string, startTime string, endTime string) (*model.Quote, error)
	checkAmountFunc func(quote *model.Quote, declared float64) error
}

func (m *mockPricingService) Quote(ctx context.Context, date string, startTime string, endTime string) (*model.Quote, error) {
	if m.quoteFunc != nil {
		return m.quoteFunc(ctx, date, startTime, endTime)
	}
	return &model.Quote{Hours: 2, HourlyRate: 800, Total: 1600}, nil
}

func (m *mockPricingService) CheckAmount(quote *model.Quote, declared float64) error {
	if m.checkAmountFunc != nil {
		return m.checkAmountFunc(quote, declared)
	}
	return nil
}

type mockLockService struct {
	verifyOwnedFunc       func(ctx context.Context, slotID string, sessionID string) error
	releaseForBookingFunc func(ctx context.Context, sessionID string, slotIDs []string) error
}

func (m *mockLockService) Acquire(ctx context.Context, slotID string, sessionID string) (time.Time, error) {
	return time.Time{}, nil
}

func (m *mockLockService) SweepExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockLockService) LiveSlotIDs(ctx context.Context, slotIDs []string) ([]string, error) {
	return nil, nil
}

func (m *mockLockService) VerifyOwned(ctx context.Context, slotID string, sessionID string) error {
	if m.verifyOwnedFunc != nil {
		return m.verifyOwnedFunc(ctx, slotID, sessionID)
	}
	return nil
}

func (m *mockLockService) ReleaseForBooking(ctx context.Context, sessionID string, slotIDs []string) error {
	if m.releaseForBookingFunc != nil {
		return m.releaseForBookingFunc(ctx, sessionID, slotIDs)
	}
	return nil
}

type mockSlotResolver struct {
	findActiveByDateAndStartFunc func(ctx context.Context, date string, startTime string) (*model.Slot, error)
}

func (m *mockSlotResolver) FindActiveByDateAndStart(ctx context.Context, date string, startTime string) (*model.Slot, error) {
	if m.findActiveByDateAndStartFunc != nil {
		return m.findActiveByDateAndStartFunc(ctx, date, startTime)
	}
	end, _ := time.Parse("15:04", startTime)
	return &model.Slot{
		ID:        "slot-" + startTime,
		Date:      date,
		StartTime: startTime,
		EndTime:   end.Add(time.Hour).Format("15:04"),
		IsActive:  true,
	}, nil
}

type mockTokenVerifier struct {
	verifyFunc func(token string, maxAge time.Duration) error
}

func (m *mockTokenVerifier) Verify(token string, maxAge time.Duration) error {
	if m.verifyFunc != nil {
		return m.verifyFunc(token, maxAge)
	}
	return nil
}

type mockNotifier struct {
	notifyOperatorFunc func(ctx context.Context, summary *notifications.BookingSummary) error
	notifyCustomerFunc func(ctx context.Context, channel string, contact string, summary *notifications.BookingSummary) error
}

func (m *mockNotifier) NotifyOperator(ctx context.Context, summary *notifications.BookingSummary) error {
	if m.notifyOperatorFunc != nil {
		return m.notifyOperatorFunc(ctx, summary)
	}
	return nil
}

func (m *mockNotifier) NotifyCustomer(ctx context.Context, channel string, contact string, summary *notifications.BookingSummary) error {
	if m.notifyCustomerFunc != nil {
		return m.notifyCustomerFunc(ctx, channel, contact, summary)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		PaymentWindow:       5 * time.Minute,
		AmountTolerance:     0.01,
		WeekendTwoHourTotal: 1500,
		Log: logger.New(logger.Config{
			Level:   "info",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

type testDeps struct {
	repo      *mockBookingRepository
	customers *mockCustomerService
	pricing   *mockPricingService
	locks     *mockLockService
	slots     *mockSlotResolver
	tokens    *mockTokenVerifier
	notifier  *mockNotifier
}

func newTestService(d *testDeps) *bookingService {
	cfg := testConfig()
	return &bookingService{
		repo:      d.repo,
		customers: d.customers,
		pricing:   d.pricing,
		locks:     d.locks,
		slots:     d.slots,
		tokens:    d.tokens,
		notifier:  d.notifier,
		validator: validator.NewBookingValidator(cfg.Log),
		cfg:       cfg,
	}
}

func defaultDeps() *testDeps {
	return &testDeps{
		repo:      &mockBookingRepository{},
		customers: &mockCustomerService{},
		pricing:   &mockPricingService{},
		locks:     &mockLockService{},
		slots:     &mockSlotResolver{},
		tokens:    &mockTokenVerifier{},
		notifier:  &mockNotifier{},
	}
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		SessionID:    "session-abc-123",
		Name:         "Ravi Kumar",
		Phone:        "9876543210",
		Email:        "ravi@example.com",
		Date:         "2024-06-05",
		StartTime:    "06:00",
		EndTime:      "08:00",
		Amount:       1600,
		ProofRef:     "PAY_1717567200_abcd1234.png",
		PaymentToken: "token",
	}
}

func TestSubmit_CreatesGroupAndReleasesLocks(t *testing.T) {
	var inserted []*model.Booking
	var releasedSlots []string

	deps := defaultDeps()
	deps.repo.createManyFunc = func(ctx context.Context, bookings []*model.Booking) error {
		inserted = bookings
		return nil
	}
	deps.locks.releaseForBookingFunc = func(ctx context.Context, sessionID string, slotIDs []string) error {
		releasedSlots = slotIDs
		return nil
	}
	service := newTestService(deps)

	group, err := service.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(inserted) != 2 {
		t.Fatalf("expected 2 booking rows, got %d", len(inserted))
	}
	for _, b := range inserted {
		if b.ProofRef != "PAY_1717567200_abcd1234.png" {
			t.Errorf("rows must share the proof ref, got %s", b.ProofRef)
		}
		if b.PaidAmount != 800 {
			t.Errorf("expected paid amount 800 per row, got %f", b.PaidAmount)
		}
		if b.Status != model.BookingStatusPending {
			t.Errorf("expected pending status, got %s", b.Status)
		}
		if b.PaymentStatus != model.PaymentStatusManualVerification {
			t.Errorf("expected manual verification payment status, got %s", b.PaymentStatus)
		}
	}
	if inserted[0].StartTime != "06:00" || inserted[1].StartTime != "07:00" {
		t.Errorf("unexpected row start times: %s, %s", inserted[0].StartTime, inserted[1].StartTime)
	}

	if len(releasedSlots) != 2 {
		t.Errorf("expected both locks released, got %v", releasedSlots)
	}

	if group.SlotCount != 2 || group.TotalPaid != 1600 {
		t.Errorf("unexpected group: %+v", group)
	}
	if group.Status != model.BookingStatusPending {
		t.Errorf("expected pending group, got %s", group.Status)
	}
}

func TestSubmit_WeekendEffectiveRateBalancesGroup(t *testing.T) {
	var inserted []*model.Booking

	deps := defaultDeps()
	deps.pricing.quoteFunc = func(ctx context.Context, date string, startTime string, endTime string) (*model.Quote, error) {
		return &model.Quote{Hours: 2, HourlyRate: 800, Total: 1500, Weekend: true}, nil
	}
	deps.repo.createManyFunc = func(ctx context.Context, bookings []*model.Booking) error {
		inserted = bookings
		return nil
	}
	service := newTestService(deps)

	req := validRequest()
	req.Date = "2024-06-08"
	req.StartTime = "14:00"
	req.EndTime = "16:00"
	req.Amount = 1500

	group, err := service.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var priceSum float64
	for _, b := range inserted {
		if b.SlotPrice != 750 {
			t.Errorf("expected discounted slot price 750, got %f", b.SlotPrice)
		}
		priceSum += b.SlotPrice
	}
	if priceSum != 1500 {
		t.Errorf("per-slot prices must sum to the discounted total, got %f", priceSum)
	}
	if group.TotalPaid != 1500 {
		t.Errorf("expected group total 1500, got %f", group.TotalPaid)
	}
}

func TestSubmit_DeclaredAmountIsPersisted(t *testing.T) {
	var inserted []*model.Booking

	deps := defaultDeps()
	deps.repo.createManyFunc = func(ctx context.Context, bookings []*model.Booking) error {
		inserted = bookings
		return nil
	}
	service := newTestService(deps)

	req := validRequest()
	req.Amount = 1599.99

	group, err := service.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, b := range inserted {
		if b.PaidAmount != 1599.99/2 {
			t.Errorf("rows must split the declared amount, got %f", b.PaidAmount)
		}
	}
	if group.TotalPaid != 1599.99 {
		t.Errorf("expected declared total 1599.99, got %f", group.TotalPaid)
	}
}

func TestSubmit_ReplayedProofRefConflicts(t *testing.T) {
	createCalled := false

	deps := defaultDeps()
	deps.repo.existsForProofRefFunc = func(ctx context.Context, proofRef string) (bool, error) {
		return true, nil
	}
	deps.repo.createManyFunc = func(ctx context.Context, bookings []*model.Booking) error {
		createCalled = true
		return nil
	}
	service := newTestService(deps)

	_, err := service.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Details["reason"] != "proof_ref_already_used" {
		t.Errorf("expected reason proof_ref_already_used, got %v", appErr.Details["reason"])
	}
	if createCalled {
		t.Error("a replayed proof reference must not create rows")
	}
}

func TestSubmit_ExpiredToken(t *testing.T) {
	deps := defaultDeps()
	deps.tokens.verifyFunc = func(token string, maxAge time.Duration) error {
		return sealer.ErrTokenExpired
	}
	service := newTestService(deps)

	_, err := service.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeTokenExpired {
		t.Errorf("expected code %s, got %s", apperrors.CodeTokenExpired, appErr.Code)
	}
}

func TestSubmit_InvalidToken(t *testing.T) {
	deps := defaultDeps()
	deps.tokens.verifyFunc = func(token string, maxAge time.Duration) error {
		return sealer.ErrTokenInvalid
	}
	service := newTestService(deps)

	_, err := service.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeTokenInvalid {
		t.Errorf("expected code %s, got %s", apperrors.CodeTokenInvalid, appErr.Code)
	}
}

func TestSubmit_ValidationFailure(t *testing.T) {
	service := newTestService(defaultDeps())

	req := validRequest()
	req.Phone = "98765"

	_, err := service.Submit(context.Background(), req)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestSubmit_LockNotOwnedRollsBack(t *testing.T) {
	createCalled := false

	deps := defaultDeps()
	deps.locks.verifyOwnedFunc = func(ctx context.Context, slotID string, sessionID string) error {
		return apperrors.ConflictWithReason("The hold on this slot is gone", "lock_invalid_or_expired")
	}
	deps.repo.createManyFunc = func(ctx context.Context, bookings []*model.Booking) error {
		createCalled = true
		return nil
	}
	service := newTestService(deps)

	_, err := service.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Details["reason"] != "lock_invalid_or_expired" {
		t.Errorf("expected reason lock_invalid_or_expired, got %v", appErr.Details["reason"])
	}
	if createCalled {
		t.Error("no rows may be written when a lock check fails")
	}
}

func TestSubmit_AmountMismatch(t *testing.T) {
	deps := defaultDeps()
	deps.pricing.checkAmountFunc = func(quote *model.Quote, declared float64) error {
		return apperrors.Conflict("Declared amount does not match the expected total").
			WithDetails(map[string]any{
				"reason":   "amount_mismatch",
				"expected": quote.Total,
				"declared": declared,
			})
	}
	service := newTestService(deps)

	req := validRequest()
	req.Amount = 1500

	_, err := service.Submit(context.Background(), req)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Details["reason"] != "amount_mismatch" {
		t.Errorf("expected reason amount_mismatch, got %v", appErr.Details["reason"])
	}
}

func TestSubmit_SlotTakenDuringInsert(t *testing.T) {
	deps := defaultDeps()
	deps.repo.createManyFunc = func(ctx context.Context, bookings []*model.Booking) error {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	service := newTestService(deps)

	_, err := service.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Details["reason"] != "slot_already_booked" {
		t.Errorf("expected reason slot_already_booked, got %v", appErr.Details["reason"])
	}
}

func TestSubmit_MissingSlotInRange(t *testing.T) {
	deps := defaultDeps()
	deps.slots.findActiveByDateAndStartFunc = func(ctx context.Context, date string, startTime string) (*model.Slot, error) {
		if startTime == "07:00" {
			return nil, slotserrors.ErrNotFound
		}
		return &model.Slot{ID: "slot-" + startTime, Date: date, StartTime: startTime, EndTime: "07:00", IsActive: true}, nil
	}
	service := newTestService(deps)

	_, err := service.Submit(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func groupRows(proofRef string, status string) []*model.Booking {
	return []*model.Booking{
		{
			ID:         "665d2c3e8f1b2a0001000010",
			CustomerID: "665d2c3e8f1b2a0001000099",
			SlotID:     "665d2c3e8f1b2a0001000001",
			Date:       "2024-06-05",
			StartTime:  "06:00",
			EndTime:    "07:00",
			PaidAmount: 800,
			ProofRef:   proofRef,
			Status:     status,
		},
		{
			ID:         "665d2c3e8f1b2a0001000011",
			CustomerID: "665d2c3e8f1b2a0001000099",
			SlotID:     "665d2c3e8f1b2a0001000002",
			Date:       "2024-06-05",
			StartTime:  "07:00",
			EndTime:    "08:00",
			PaidAmount: 800,
			ProofRef:   proofRef,
			Status:     status,
		},
	}
}

func TestApprove_ConfirmsWholeGroup(t *testing.T) {
	const proofRef = "PAY_1717567200_abcd1234.png"
	var updatedStatus, updatedPayment string

	deps := defaultDeps()
	deps.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{ID: id, ProofRef: proofRef}, nil
	}
	deps.repo.updateStatusByProofRefFunc = func(ctx context.Context, ref string, status string, paymentStatus string) (int64, error) {
		if ref != proofRef {
			t.Errorf("expected proof ref %s, got %s", proofRef, ref)
		}
		updatedStatus = status
		updatedPayment = paymentStatus
		return 2, nil
	}
	deps.repo.findByProofRefFunc = func(ctx context.Context, ref string) ([]*model.Booking, error) {
		return groupRows(ref, model.BookingStatusConfirmed), nil
	}
	service := newTestService(deps)

	group, err := service.Approve(context.Background(), "665d2c3e8f1b2a0001000010")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedStatus != model.BookingStatusConfirmed {
		t.Errorf("expected confirmed status, got %s", updatedStatus)
	}
	if updatedPayment != model.PaymentStatusVerified {
		t.Errorf("expected verified payment status, got %s", updatedPayment)
	}
	if group.StartTime != "06:00" || group.EndTime != "08:00" {
		t.Errorf("unexpected group window: %s-%s", group.StartTime, group.EndTime)
	}
	if group.TotalPaid != 1600 || group.SlotCount != 2 {
		t.Errorf("unexpected group totals: %+v", group)
	}
}

func TestApprove_NotifierFailureDoesNotFailApproval(t *testing.T) {
	const proofRef = "PAY_1717567200_abcd1234.png"
	notified := make(chan struct{}, 2)

	deps := defaultDeps()
	deps.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{ID: id, ProofRef: proofRef}, nil
	}
	deps.repo.updateStatusByProofRefFunc = func(ctx context.Context, ref string, status string, paymentStatus string) (int64, error) {
		return 2, nil
	}
	deps.repo.findByProofRefFunc = func(ctx context.Context, ref string) ([]*model.Booking, error) {
		return groupRows(ref, model.BookingStatusConfirmed), nil
	}
	deps.notifier.notifyCustomerFunc = func(ctx context.Context, channel string, contact string, summary *notifications.BookingSummary) error {
		notified <- struct{}{}
		return errors.New("gateway unreachable")
	}
	service := newTestService(deps)

	group, err := service.Approve(context.Background(), "665d2c3e8f1b2a0001000010")
	if err != nil {
		t.Fatalf("approval must stand when notification fails: %v", err)
	}
	if group.Status != model.BookingStatusConfirmed {
		t.Errorf("expected confirmed group, got %s", group.Status)
	}

	// One send per channel; the failures are logged and swallowed.
	for i := 0; i < 2; i++ {
		select {
		case <-notified:
		case <-time.After(2 * time.Second):
			t.Fatal("customer notification was never attempted")
		}
	}
}

func TestApprove_UnknownBooking(t *testing.T) {
	service := newTestService(defaultDeps())

	_, err := service.Approve(context.Background(), "665d2c3e8f1b2a0001000010")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestReject_MarksGroupRejected(t *testing.T) {
	const proofRef = "PAY_1717567200_abcd1234.png"
	var updatedStatus, updatedPayment string

	deps := defaultDeps()
	deps.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{ID: id, ProofRef: proofRef}, nil
	}
	deps.repo.updateStatusByProofRefFunc = func(ctx context.Context, ref string, status string, paymentStatus string) (int64, error) {
		updatedStatus = status
		updatedPayment = paymentStatus
		return 2, nil
	}
	deps.repo.findByProofRefFunc = func(ctx context.Context, ref string) ([]*model.Booking, error) {
		return groupRows(ref, model.BookingStatusRejected), nil
	}
	service := newTestService(deps)

	group, err := service.Reject(context.Background(), "665d2c3e8f1b2a0001000010")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updatedStatus != model.BookingStatusRejected {
		t.Errorf("expected rejected status, got %s", updatedStatus)
	}
	if updatedPayment != model.PaymentStatusRejected {
		t.Errorf("expected rejected payment status, got %s", updatedPayment)
	}
	if group.Status != model.BookingStatusRejected {
		t.Errorf("expected rejected group, got %s", group.Status)
	}
}

func TestDelete_RemovesGroup(t *testing.T) {
	const proofRef = "PAY_1717567200_abcd1234.png"
	var deletedRef string

	deps := defaultDeps()
	deps.repo.findByIDFunc = func(ctx context.Context, id string) (*model.Booking, error) {
		return &model.Booking{ID: id, ProofRef: proofRef}, nil
	}
	deps.repo.deleteByProofRefFunc = func(ctx context.Context, ref string) (int64, error) {
		deletedRef = ref
		return 2, nil
	}
	service := newTestService(deps)

	if err := service.Delete(context.Background(), "665d2c3e8f1b2a0001000010"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deletedRef != proofRef {
		t.Errorf("expected proof ref %s deleted, got %s", proofRef, deletedRef)
	}
}

func TestGetAll_ReturnsRowsAndCount(t *testing.T) {
	deps := defaultDeps()
	deps.repo.countFunc = func(ctx context.Context) (int64, error) {
		return 7, nil
	}
	deps.repo.findAllFunc = func(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
		return groupRows("PAY_1717567200_abcd1234.png", model.BookingStatusPending), nil
	}
	service := newTestService(deps)

	rows, count, err := service.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 7 {
		t.Errorf("expected count 7, got %d", count)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}
}
