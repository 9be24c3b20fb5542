package service

import (
	"context"
	"testing"

	tournamentserrors "dmaxcricket/internal/tournaments/errors"
	"dmaxcricket/internal/tournaments/validator"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/logger"
	"dmaxcricket/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockTournamentRepository struct {
	createFunc                          func(ctx context.Context, tournament *model.Tournament) error
	findByIDFunc                        func(ctx context.Context, id string) (*model.Tournament, error)
	findAllFunc                         func(ctx context.Context) ([]*model.Tournament, error)
	deleteFunc                          func(ctx context.Context, id string) error
	createRegistrationFunc              func(ctx context.Context, registration *model.TournamentRegistration) error
	registrationCountsFunc              func(ctx context.Context) (map[string]int64, error)
	deleteRegistrationsByTournamentFunc func(ctx context.Context, tournamentID string) (int64, error)
}

func (m *mockTournamentRepository) Create(ctx context.Context, tournament *model.Tournament) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tournament)
	}
	return nil
}

func (m *mockTournamentRepository) FindByID(ctx context.Context, id string) (*model.Tournament, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return &model.Tournament{ID: id, Title: "Summer Bash"}, nil
}

func (m *mockTournamentRepository) FindAll(ctx context.Context) ([]*model.Tournament, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTournamentRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTournamentRepository) CreateRegistration(ctx context.Context, registration *model.TournamentRegistration) error {
	if m.createRegistrationFunc != nil {
		return m.createRegistrationFunc(ctx, registration)
	}
	return nil
}

func (m *mockTournamentRepository) RegistrationCounts(ctx context.Context) (map[string]int64, error) {
	if m.registrationCountsFunc != nil {
		return m.registrationCountsFunc(ctx)
	}
	return nil, nil
}

func (m *mockTournamentRepository) DeleteRegistrationsByTournament(ctx context.Context, tournamentID string) (int64, error) {
	if m.deleteRegistrationsByTournamentFunc != nil {
		return m.deleteRegistrationsByTournamentFunc(ctx, tournamentID)
	}
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "info",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}
}

func newTestService(repo *mockTournamentRepository) *tournamentService {
	cfg := testConfig()
	return &tournamentService{
		repo:      repo,
		validator: validator.NewTournamentValidator(cfg.Log),
		cfg:       cfg,
	}
}

func validRegistration() *model.TournamentRegistrationRequest {
	return &model.TournamentRegistrationRequest{
		TournamentID: "665d2c3e8f1b2a0001000001",
		TeamName:     "Chepauk Challengers",
		CaptainName:  "Ravi Kumar",
		CaptainPhone: "9876543210",
		Players:      []string{"Ravi Kumar", "Arun S"},
	}
}

func TestRegister_CreatesPendingRegistration(t *testing.T) {
	var stored *model.TournamentRegistration
	repo := &mockTournamentRepository{
		createRegistrationFunc: func(ctx context.Context, registration *model.TournamentRegistration) error {
			stored = registration
			return nil
		},
	}
	service := newTestService(repo)

	registration, err := service.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected the registration to be stored")
	}
	if registration.Status != model.RegistrationStatusPending {
		t.Errorf("expected status pending, got %s", registration.Status)
	}
	if registration.TournamentID != "665d2c3e8f1b2a0001000001" {
		t.Errorf("unexpected tournament id: %s", registration.TournamentID)
	}
}

func TestRegister_NormalizesInput(t *testing.T) {
	repo := &mockTournamentRepository{}
	service := newTestService(repo)

	req := validRegistration()
	req.TeamName = "  Chepauk   Challengers "
	req.CaptainPhone = "98765-43210"
	req.Players = []string{" Ravi  Kumar ", "Ravi Kumar", "", "Arun S"}

	registration, err := service.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if registration.TeamName != "Chepauk Challengers" {
		t.Errorf("unexpected team name: %q", registration.TeamName)
	}
	if registration.CaptainPhone != "9876543210" {
		t.Errorf("unexpected phone: %q", registration.CaptainPhone)
	}
	if len(registration.Players) != 2 {
		t.Fatalf("expected duplicate and empty players dropped, got %v", registration.Players)
	}
	if registration.Players[0] != "Ravi Kumar" || registration.Players[1] != "Arun S" {
		t.Errorf("unexpected players: %v", registration.Players)
	}
}

func TestRegister_UnknownTournament(t *testing.T) {
	createCalled := false
	repo := &mockTournamentRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Tournament, error) {
			return nil, tournamentserrors.ErrNotFound
		},
		createRegistrationFunc: func(ctx context.Context, registration *model.TournamentRegistration) error {
			createCalled = true
			return nil
		},
	}
	service := newTestService(repo)

	_, err := service.Register(context.Background(), validRegistration())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
	if createCalled {
		t.Error("no registration must be created for an unknown tournament")
	}
}

func TestRegister_ValidationFailure(t *testing.T) {
	service := newTestService(&mockTournamentRepository{})

	req := validRegistration()
	req.TeamName = ""

	_, err := service.Register(context.Background(), req)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}

func TestRegister_DuplicateTeamConflicts(t *testing.T) {
	repo := &mockTournamentRepository{
		createRegistrationFunc: func(ctx context.Context, registration *model.TournamentRegistration) error {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		},
	}
	service := newTestService(repo)

	_, err := service.Register(context.Background(), validRegistration())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Details["reason"] != "team_already_registered" {
		t.Errorf("expected reason team_already_registered, got %v", appErr.Details["reason"])
	}
}

func TestList_AttachesRegistrationCounts(t *testing.T) {
	repo := &mockTournamentRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Tournament, error) {
			return []*model.Tournament{
				{ID: "t1", Title: "Summer Bash", EventDate: "2024-07-01"},
				{ID: "t2", Title: "Monsoon Cup", EventDate: "2024-08-15"},
			}, nil
		},
		registrationCountsFunc: func(ctx context.Context) (map[string]int64, error) {
			return map[string]int64{"t1": 5}, nil
		},
	}
	service := newTestService(repo)

	summaries, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summaries) != 2 {
		t.Fatalf("expected 2 tournaments, got %d", len(summaries))
	}
	if summaries[0].RegistrationCount != 5 {
		t.Errorf("expected 5 registrations for t1, got %d", summaries[0].RegistrationCount)
	}
	if summaries[1].RegistrationCount != 0 {
		t.Errorf("expected 0 registrations for t2, got %d", summaries[1].RegistrationCount)
	}
}

func TestDelete_RemovesRegistrations(t *testing.T) {
	var removedFor string
	repo := &mockTournamentRepository{
		deleteRegistrationsByTournamentFunc: func(ctx context.Context, tournamentID string) (int64, error) {
			removedFor = tournamentID
			return 3, nil
		},
	}
	service := newTestService(repo)

	if err := service.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if removedFor != "t1" {
		t.Error("expected registrations of the deleted tournament to be removed")
	}
}

func TestDelete_UnknownTournament(t *testing.T) {
	repo := &mockTournamentRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return tournamentserrors.ErrNotFound
		},
	}
	service := newTestService(repo)

	err := service.Delete(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected code %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}

func TestCreate_StoresSanitizedTournament(t *testing.T) {
	var stored *model.Tournament
	repo := &mockTournamentRepository{
		createFunc: func(ctx context.Context, tournament *model.Tournament) error {
			stored = tournament
			return nil
		},
	}
	service := newTestService(repo)

	_, err := service.Create(context.Background(), &model.Tournament{
		Title:       "  Winter   League ",
		Description: " Knockout format. ",
		EventDate:   "2024-12-20",
		EntryFee:    2500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Title != "Winter League" {
		t.Errorf("unexpected title: %q", stored.Title)
	}
	if stored.Description != "Knockout format." {
		t.Errorf("unexpected description: %q", stored.Description)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	service := newTestService(&mockTournamentRepository{})

	_, err := service.Create(context.Background(), &model.Tournament{
		Title:     "Winter League",
		EventDate: "20-12-2024",
		EntryFee:  2500,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
	}
}
