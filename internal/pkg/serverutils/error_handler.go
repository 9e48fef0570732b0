package serverutils

import (
	"errors"

	"ai-courselab-be/internal/service"
	"ai-courselab-be/pkg/outline"
	"ai-courselab-be/pkg/scribo"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses so
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorBody{Message: fiberErr.Message})
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, fe.Field()+" failed on "+fe.Tag())
			}
			return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Message: "Invalid request data", Errors: fields})
		}

		var reqErr *service.ValidationError
		if errors.As(err, &reqErr) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorBody{Message: reqErr.Error()})
		}

		if errors.Is(err, service.ErrCourseNotFound) ||
			errors.Is(err, outline.ErrModuleNotFound) ||
			errors.Is(err, outline.ErrCourseEmpty) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorBody{Message: err.Error()})
		}

		var genErr *scribo.GenerationError
		if errors.As(err, &genErr) {
			return c.Status(fiber.StatusBadGateway).JSON(ErrorBody{Message: genErr.Error()})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Message: "Internal server error"})
	}
}
