// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"noteapi/internal/notes/adapters/cache"
	"noteapi/internal/notes/adapters/grammar"
	noteshttp "noteapi/internal/notes/adapters/http"
	"noteapi/internal/notes/adapters/http/notes"
	"noteapi/internal/notes/adapters/markdown"
	"noteapi/internal/notes/adapters/postgres"
	"noteapi/internal/notes/app"
	"noteapi/internal/notes/config"
	"noteapi/internal/notes/db"
	"noteapi/internal/notes/resilience"
	"noteapi/pkg/db/redis"
	"noteapi/pkg/logger"
	"noteapi/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to initialize Redis"
	ErrStartHTTP            = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing Redis connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing render cache"
	LogCacheDisabled       = "render cache disabled"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		database, err := db.New(ctx, &cfg.Postgres, &cfg.Migrations)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())

		var opts []app.Option
		var redisClient *redis.Client
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			redisClient, err = redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrInitRedis, zap.Error(err))
				database.Close(ctx)
				exitCode = 1
				return
			}
			opts = append(opts, app.WithRenderCache(cache.NewRenderCache(redisClient, cfg.Redis.RenderTTL)))
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitUseCases)
		noteUseCase := app.NewNoteUseCase(repoFactory.NoteRepository(), markdown.NewRenderer(), opts...)

		breaker := resilience.DefaultCircuitBreakerConfig()
		breaker.ErrorThreshold = cfg.Grammar.BreakerErrorThreshold
		breaker.Timeout = cfg.Grammar.BreakerOpenTimeout
		grammarClient := grammar.NewClient(grammar.Config{
			URL:     cfg.Grammar.URL,
			Timeout: cfg.Grammar.Timeout,
			Breaker: breaker,
		})

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := noteshttp.NewApp(noteshttp.ServerConfig{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})
		noteshttp.SetupRouter(fiberApp,
			notes.NewHandler(noteUseCase, grammarClient),
			noteshttp.NewHealthHandler(database))

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// HTTP сервер останавливается раньше, чем закрываются хранилища.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				httpErr := fiberApp.ShutdownWithContext(ctx)

				var redisErr error
				if redisClient != nil {
					log.Info(ctx, LogClosingRedis)
					redisErr = redisClient.Close(ctx)
				}

				log.Info(ctx, LogClosingDB)
				database.Close(ctx)

				return errors.Join(httpErr, redisErr)
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
