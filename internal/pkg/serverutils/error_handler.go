package serverutils

import (
	"errors"

	"ai-tutor-be/pkg/rag"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors surfaced by controllers to JSON
// responses. Pipeline failures come back as one generic generation error
// with the originating stage attached for diagnostics.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		}

		var pipelineErr *rag.PipelineError
		if errors.As(err, &pipelineErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(Response{
				Success: false,
				Message: "generation failed",
				Data:    fiber.Map{"stage": string(pipelineErr.Stage)},
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
	}
}
