package notes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteapi/internal/notes/adapters/http/middleware"
	"noteapi/internal/notes/app"
	"noteapi/internal/notes/domain/entities"
	"noteapi/pkg/logger"
)

// ErrMsgInternal сообщение клиенту для непредвиденных ошибок.
const ErrMsgInternal = "Internal server error"

// Response общий конверт всех ответов API.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(ctx fiber.Ctx, status int, data any) error {
	return ctx.Status(status).JSON(Response{Success: true, Data: data})
}

// errorStatus единственное место сопоставления ошибок и HTTP статусов.
func errorStatus(err error) (int, string) {
	var (
		validationErr *ValidationError
		uploadErr     *UploadError
		externalErr   *entities.ExternalServiceError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &uploadErr):
		return uploadErr.Status, uploadErr.Message
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, app.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &externalErr):
		return http.StatusBadGateway, externalErr.Message
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return http.StatusInternalServerError, ErrMsgInternal
	}
}

// ErrorHandler формирует ответ об ошибке в общем конверте. Используется как fiber.Config.ErrorHandler.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	status, message := errorStatus(err)

	if status >= http.StatusInternalServerError {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Error(requestCtx, "request error",
			zap.Int("status", status), zap.String("path", ctx.Path()), zap.Error(err))
	}

	return ctx.Status(status).JSON(Response{Success: false, Error: message})
}
