// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"noteapi/pkg/logger"
)

// Hook выполняется при завершении приложения.
type Hook func(context.Context) error

// ErrTimeout возвращается, если хуки не завершились за отведенное время.
var ErrTimeout = errors.New("graceful shutdown timed out")

// Константы для сообщений logger.
const (
	LogSignalReceived = "shutdown signal received"
	LogHookFailed     = "shutdown hook failed"
	LogTimeout        = "shutdown timeout exceeded"
)

// Wait блокирует выполнение до получения SIGINT или SIGTERM,
// затем выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Log(ctx).Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))

	_ = RunHooks(ctx, timeout, hooks...)
}

// RunHooks параллельно выполняет хуки и ждет их завершения не дольше timeout.
func RunHooks(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn Hook) {
			defer wg.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, LogHookFailed, zap.Error(err))
			}
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-hookCtx.Done():
		log.Warn(ctx, LogTimeout, zap.Duration("timeout", timeout))
		return ErrTimeout
	}
}
