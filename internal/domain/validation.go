package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports a single failed field-level rule. The first rule
// that fails aborts construction; errors are not accumulated.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func NotEmpty(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, fmt.Sprintf("%s must not be empty", field))
	}
	return nil
}

func Positive(value decimal.Decimal, field string) error {
	if value.Sign() <= 0 {
		return NewValidationError(field, fmt.Sprintf("%s must be greater than 0", field))
	}
	return nil
}

func PositiveInt(value int, field string) error {
	if value <= 0 {
		return NewValidationError(field, fmt.Sprintf("%s must be greater than 0", field))
	}
	return nil
}

// MaxLen implies NotEmpty: a blank value fails before the length check.
func MaxLen(value string, max int, field string) error {
	if err := NotEmpty(value, field); err != nil {
		return err
	}
	if len(value) > max {
		return NewValidationError(field, fmt.Sprintf("%s must not exceed %d characters", field, max))
	}
	return nil
}
