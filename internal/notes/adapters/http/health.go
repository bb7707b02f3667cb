package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteapi/internal/notes/adapters/http/middleware"
	"noteapi/internal/notes/adapters/http/notes"
	"noteapi/pkg/logger"
)

// Константы проверки состояния.
const (
	HealthOK            = "ok"
	ErrMsgUnavailable   = "database unavailable"
	DefaultPingTimeout  = 2 * time.Second
	LogHealthPingFailed = "health check ping failed"
)

// Pinger проверяет доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обработчик GET /health.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler создает обработчик проверки состояния.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: DefaultPingTimeout}
}

// Check возвращает 200, если база данных отвечает, иначе 503.
func (h *HealthHandler) Check(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	pingCtx, cancel := context.WithTimeout(requestCtx, h.timeout)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, LogHealthPingFailed, zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, ErrMsgUnavailable)
	}

	return ctx.Status(fiber.StatusOK).JSON(notes.Response{Success: true, Data: HealthOK})
}
