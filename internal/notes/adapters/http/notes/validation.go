package notes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// Сообщения валидации.
const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidNoteID      = "Validation failed (numeric string is expected)"
	ErrMsgTitleRequired      = "Title is required"
	ErrMsgContentRequired    = "Content is required"
	ErrMsgTextRequired       = "Text is required"
	ErrMsgTextTooLong        = "Limit to 5000 characters"
)

// fieldMessages сообщения для пар поле.тег.
var fieldMessages = map[string]string{
	"Title.required":   ErrMsgTitleRequired,
	"Content.required": ErrMsgContentRequired,
	"Text.required":    ErrMsgTextRequired,
	"Text.max":         ErrMsgTextTooLong,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError список нарушений входных данных.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

func newValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// validateStruct проверяет структуру по тегам validate и переводит нарушения в человекочитаемый вид.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			violations = append(violations, msg)
			continue
		}
		violations = append(violations, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
	}
	return newValidationError(violations...)
}

// bindAndValidate разбирает JSON тело в dst и проверяет его.
// Ничего не вызывается до успешного завершения проверки.
func bindAndValidate(ctx fiber.Ctx, dst any) error {
	if err := ctx.Bind().JSON(dst); err != nil {
		return newValidationError(ErrMsgInvalidRequestBody)
	}
	return validateStruct(dst)
}

// parseNoteID разбирает параметр пути :id как десятичное целое.
func parseNoteID(ctx fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, newValidationError(ErrMsgInvalidNoteID)
	}
	return id, nil
}
