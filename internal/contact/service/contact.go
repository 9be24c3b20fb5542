package service

import (
	"context"
	"errors"
	"strings"

	"dmaxcricket/internal/contact/repository"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/model"
	"dmaxcricket/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// RecentMessageLimit caps how many messages the operator inbox shows.
const RecentMessageLimit = 10

type ContactService interface {
	Submit(ctx context.Context, req *model.ContactRequest) (*model.ContactMessage, error)
	Recent(ctx context.Context) ([]*model.ContactMessage, error)
}

type contactService struct {
	repo     repository.ContactRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewContactService(repo repository.ContactRepository, cfg *config.Config) ContactService {
	return &contactService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *contactService) Submit(ctx context.Context, req *model.ContactRequest) (*model.ContactMessage, error) {
	req.Name = sanitizer.SanitizeName(req.Name)
	req.Email = sanitizer.SanitizeEmail(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fieldErr.Field())
			}
			return nil, apperrors.Validation("Contact message validation failed", map[string]any{
				"fields": strings.Join(fields, ", "),
			})
		}
		return nil, apperrors.Internal("Failed to validate contact message", err)
	}

	message := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, message); err != nil {
		return nil, apperrors.Internal("Failed to store contact message", err)
	}

	s.cfg.Log.Info("Contact message received", "id", message.ID)
	return message, nil
}

func (s *contactService) Recent(ctx context.Context) ([]*model.ContactMessage, error) {
	messages, err := s.repo.FindRecent(ctx, RecentMessageLimit)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve contact messages", err)
	}

	return messages, nil
}
