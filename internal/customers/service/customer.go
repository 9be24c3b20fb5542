package service

import (
	"context"
	"errors"

	customerserrors "dmaxcricket/internal/customers/errors"
	"dmaxcricket/internal/customers/repository"
	"dmaxcricket/pkg/config"
	apperrors "dmaxcricket/pkg/errors"
	"dmaxcricket/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerService interface {
	FindOrCreate(ctx context.Context, name string, phone string, email string) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
	cfg  *config.Config
}

func NewCustomerService(repo repository.CustomerRepository, cfg *config.Config) CustomerService {
	return &customerService{
		repo: repo,
		cfg:  cfg,
	}
}

// FindOrCreate resolves a customer by phone, creating the record on first
// contact. An existing customer's name and email are left as they are; the
// phone number is the identity. A duplicate-key race on the unique phone
// index falls back to the winning record.
func (s *customerService) FindOrCreate(ctx context.Context, name string, phone string, email string) (*model.Customer, error) {
	existing, err := s.repo.FindByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, customerserrors.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up customer", err)
	}

	customer := &model.Customer{
		Name:  name,
		Phone: phone,
		Email: email,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			winner, findErr := s.repo.FindByPhone(ctx, phone)
			if findErr != nil {
				return nil, apperrors.Internal("Failed to look up customer", findErr)
			}
			return winner, nil
		}
		return nil, apperrors.Internal("Failed to create customer", err)
	}

	s.cfg.Log.Info("Customer created", "id", customer.ID)
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Customer", id)
		}
		if errors.Is(err, customerserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid customer ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve customer", err)
	}

	return customer, nil
}
