package domain

import "fmt"

// Business error codes, stable across messages.
const (
	ErrCodeDuplicateID      = "DUPLICATE_ID"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidDateRange = "INVALID_DATE_RANGE"
	ErrCodeKindMismatch     = "KIND_MISMATCH"
	ErrCodeSaveFailed       = "SAVE_FAILED"
	ErrCodeUpdateFailed     = "UPDATE_FAILED"
	ErrCodeDeleteFailed     = "DELETE_FAILED"
)

// BusinessError is a rule-level failure raised before any mutation is
// attempted, carrying a machine-readable code next to the human message.
type BusinessError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *BusinessError) Error() string {
	return e.Message
}

func NewBusinessError(code, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

// DataAccessError wraps an underlying storage failure. The service layer
// never retries these; they propagate to the caller as-is.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func NewDataAccessError(op string, err error) *DataAccessError {
	return &DataAccessError{Op: op, Err: err}
}
