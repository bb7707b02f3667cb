// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"noteapi/pkg/logger"
)

// ContextKey ключ Locals, под которым лежит контекст запроса с request id.
const ContextKey = "requestContext"

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый,
// кладет его в контекст запроса и возвращает в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(logger.RequestIDHeader))
		id, _ := logger.GetRequestID(requestCtx)

		ctx.Set(logger.RequestIDHeader, id)
		ctx.Locals(ContextKey, requestCtx)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса, сохраненный NewRequestIDMiddleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(ContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
