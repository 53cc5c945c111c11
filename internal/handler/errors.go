package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thanhvdo/goldfx-be/internal/domain"
)

// writeDomainError maps domain errors onto HTTP responses. Business errors
// keep their machine-readable code next to the message.
func writeDomainError(c echo.Context, err error) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
	}

	var businessErr *domain.BusinessError
	if errors.As(err, &businessErr) {
		status := http.StatusInternalServerError
		switch businessErr.Code {
		case domain.ErrCodeDuplicateID, domain.ErrCodeKindMismatch:
			status = http.StatusConflict
		case domain.ErrCodeNotFound:
			status = http.StatusNotFound
		case domain.ErrCodeInvalidDateRange:
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]interface{}{
			"error": businessErr.Message,
			"code":  businessErr.Code,
		})
	}

	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": "internal error",
	})
}
