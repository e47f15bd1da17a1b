// file: internals/helpers/errors.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Taksonomi error domain. Controller memetakan lewat JsonDomainError,
// pesan user-facing dibawa oleh error pembungkus (errors.Join / fmt.Errorf %w).
var (
	ErrValidation        = errors.New("validation error")
	ErrDuplicateState    = errors.New("duplicate state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
)

func domainStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateState),
		errors.Is(err, ErrInvalidTransition):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// JsonDomainError memetakan error domain ke envelope standar.
// Error tak terklasifikasi jadi 500 dengan pesan generik (detail hanya di log).
func JsonDomainError(c *fiber.Ctx, err error, message string) error {
	status := domainStatus(err)
	if status == fiber.StatusInternalServerError {
		if message == "" {
			message = "Terjadi kesalahan pada server"
		}
		return JsonError(c, status, message)
	}
	if message == "" {
		message = err.Error()
	}
	return JsonError(c, status, message)
}
