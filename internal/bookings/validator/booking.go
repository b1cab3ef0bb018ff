package validator

import (
	"errors"
	"fmt"
	"strings"

	"bookit/pkg/logger"
	"bookit/pkg/model"

	"github.com/go-playground/validator/v10"
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

type CheckoutValidator struct {
	validate  *validator.Validate
	maxGuests int
	logger    *logger.Logger
}

func NewCheckoutValidator(maxGuests int, log *logger.Logger) *CheckoutValidator {
	return &CheckoutValidator{
		validate:  validator.New(),
		maxGuests: maxGuests,
		logger:    log,
	}
}

func (v *CheckoutValidator) Validate(input *model.CheckoutInput) error {
	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	guests := input.NumGuests()
	if guests < 1 {
		return ValidationErrors{
			ValidationError{
				Field:   "Adults",
				Message: "at least one guest is required",
			},
		}
	}
	if guests > v.maxGuests {
		return ValidationErrors{
			ValidationError{
				Field:   "Adults",
				Message: fmt.Sprintf("guest count (%d) exceeds the per-order maximum (%d)", guests, v.maxGuests),
			},
		}
	}
	if input.Adults < 1 && (input.Children > 0 || input.Infants > 0) {
		return ValidationErrors{
			ValidationError{
				Field:   "Adults",
				Message: "children and infants must be accompanied by an adult",
			},
		}
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid booking ID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
