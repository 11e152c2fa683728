package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noboKumar/TraVoa-Hotel-Booking-Platform-Server/pkg/logger"
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

// BookingValidator checks the loosely-typed booking patch that arrives on
// the booking endpoint. The payload is an open merge document, so checks
// apply per known field rather than per struct.
type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *BookingValidator) ValidatePatch(patch map[string]any) error {
	var errs ValidationErrors

	if len(patch) == 0 {
		return ValidationErrors{{Field: "payload", Message: "booking payload cannot be empty"}}
	}

	if raw, ok := patch["bookedUser"]; ok {
		email, isString := raw.(string)
		if !isString || v.validate.Var(email, "required,email") != nil {
			errs = append(errs, ValidationError{
				Field:   "bookedUser",
				Message: "bookedUser must be a valid email address",
			})
		}
	}

	if raw, ok := patch["available"]; ok {
		if _, isBool := raw.(bool); !isBool {
			errs = append(errs, ValidationError{
				Field:   "available",
				Message: "available must be a boolean",
			})
		}
	}

	if raw, ok := patch["price"]; ok {
		// JSON numbers decode as float64
		price, isNumber := raw.(float64)
		if !isNumber || price < 0 {
			errs = append(errs, ValidationError{
				Field:   "price",
				Message: "price must be a non-negative number",
			})
		}
	}

	// bookedUser and bookedDate are set and cleared together; a patch that
	// assigns one without the other would break that pairing.
	_, hasUser := patch["bookedUser"]
	_, hasDate := patch["bookedDate"]
	if hasUser != hasDate {
		errs = append(errs, ValidationError{
			Field:   "bookedDate",
			Message: "bookedUser and bookedDate must be provided together",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
