package service

import (
	"context"
	"errors"
	"strings"

	tournamentserrors "dmaxcricket/internal/tournaments/errors"
	"dmaxcricket/internal/tournaments/repository"
	"dmaxcricket/internal/tournaments/validator"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/model"
	"dmaxcricket/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type TournamentService interface {
	Create(ctx context.Context, tournament *model.Tournament) (*model.Tournament, error)
	List(ctx context.Context) ([]*model.TournamentSummary, error)
	Delete(ctx context.Context, id string) error
	Register(ctx context.Context, req *model.TournamentRegistrationRequest) (*model.TournamentRegistration, error)
}

type tournamentService struct {
	repo      repository.TournamentRepository
	validator *validator.TournamentValidator
	cfg       *config.Config
}

func NewTournamentService(
	repo repository.TournamentRepository,
	validator *validator.TournamentValidator,
	cfg *config.Config,
) TournamentService {
	return &tournamentService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *tournamentService) Create(ctx context.Context, tournament *model.Tournament) (*model.Tournament, error) {
	tournament.Title = sanitizer.SanitizeName(tournament.Title)
	tournament.Description = strings.TrimSpace(tournament.Description)
	tournament.ImageRef = strings.TrimSpace(tournament.ImageRef)

	if err := s.validator.ValidateTournament(tournament); err != nil {
		s.cfg.Log.Warn("Tournament validation failed", "error", err)
		return nil, apperrors.Validation("Tournament validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, tournament); err != nil {
		return nil, apperrors.Internal("Failed to create tournament", err)
	}

	s.cfg.Log.Info("Tournament created", "id", tournament.ID, "title", tournament.Title)
	return tournament, nil
}

// List returns every tournament ordered by event date, each carrying its
// registered team count.
func (s *tournamentService) List(ctx context.Context) ([]*model.TournamentSummary, error) {
	tournaments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve tournaments", err)
	}

	counts, err := s.repo.RegistrationCounts(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to count registrations", err)
	}

	summaries := make([]*model.TournamentSummary, 0, len(tournaments))
	for _, t := range tournaments {
		summaries = append(summaries, &model.TournamentSummary{
			Tournament:        *t,
			RegistrationCount: counts[t.ID],
		})
	}
	return summaries, nil
}

// Delete removes the tournament and every registration tied to it.
func (s *tournamentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, tournamentserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Tournament", id)
		}
		if errors.Is(err, tournamentserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid tournament ID format")
		}
		return apperrors.Internal("Failed to delete tournament", err)
	}

	removed, err := s.repo.DeleteRegistrationsByTournament(ctx, id)
	if err != nil {
		return apperrors.Internal("Failed to delete registrations", err)
	}

	s.cfg.Log.Info("Tournament deleted", "id", id, "registrations_removed", removed)
	return nil
}

func (s *tournamentService) Register(ctx context.Context, req *model.TournamentRegistrationRequest) (*model.TournamentRegistration, error) {
	s.sanitize(req)
	if err := s.validator.ValidateRegistration(req); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, apperrors.Validation("Registration validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.repo.FindByID(ctx, req.TournamentID); err != nil {
		if errors.Is(err, tournamentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Tournament", req.TournamentID)
		}
		if errors.Is(err, tournamentserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid tournament ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve tournament", err)
	}

	registration := &model.TournamentRegistration{
		TournamentID: req.TournamentID,
		TeamName:     req.TeamName,
		CaptainName:  req.CaptainName,
		CaptainPhone: req.CaptainPhone,
		Players:      req.Players,
		Status:       model.RegistrationStatusPending,
	}

	if err := s.repo.CreateRegistration(ctx, registration); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ConflictWithReason(
				"Team is already registered for this tournament",
				"team_already_registered",
			)
		}
		return nil, apperrors.Internal("Failed to create registration", err)
	}

	s.cfg.Log.Info("Team registered",
		"tournament_id", registration.TournamentID,
		"team", registration.TeamName,
	)
	return registration, nil
}

func (s *tournamentService) sanitize(req *model.TournamentRegistrationRequest) {
	req.TournamentID = strings.TrimSpace(req.TournamentID)
	req.TeamName = sanitizer.SanitizeName(req.TeamName)
	req.CaptainName = sanitizer.SanitizeName(req.CaptainName)
	req.CaptainPhone = sanitizer.SanitizePhone(req.CaptainPhone)
	req.Players = sanitizer.SanitizeSlice(req.Players, sanitizer.SanitizeName)
}
