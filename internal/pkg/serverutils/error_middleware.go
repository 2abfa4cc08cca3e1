package serverutils

import (
	"errors"

	"conote-be/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware turns service errors into JSON responses. Typed
// errors keep their code and message; anything else becomes an opaque 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(statusFor(appErr.Kind)).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse("error", fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal", "internal server error"))
	}
}
