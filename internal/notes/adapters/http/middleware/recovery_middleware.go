package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteapi/pkg/logger"
)

// ErrPanic возвращается обработчику ошибок после восстановления от паники.
var ErrPanic = errors.New("server panic")

// NewRecoveryMiddleware перехватывает панику и передает ErrPanic дальше по цепочке,
// чтобы ответ сформировал общий обработчик ошибок.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(ctx)
				logger.Log(requestCtx).Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = ErrPanic
			}
		}()

		return ctx.Next()
	}
}
