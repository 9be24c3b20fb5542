package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"dmaxcricket/pkg/logger"
	"dmaxcricket/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type TournamentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewTournamentValidator(log *logger.Logger) *TournamentValidator {
	return &TournamentValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *TournamentValidator) ValidateTournament(t *model.Tournament) error {
	if err := v.validate.Struct(t); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *TournamentValidator) ValidateRegistration(req *model.TournamentRegistrationRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if !phoneRegex.MatchString(req.CaptainPhone) {
		return ValidationErrors{
			ValidationError{
				Field:   "CaptainPhone",
				Message: "captain_phone must be exactly 10 digits",
			},
		}
	}

	return nil
}

func (v *TournamentValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "datetime":
			message = fmt.Sprintf("%s has an invalid format", err.Field())
		case "gte":
			message = fmt.Sprintf("%s must not be negative", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
