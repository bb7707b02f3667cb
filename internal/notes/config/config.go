// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"

	"go.uber.org/zap"

	pkgconfig "noteapi/pkg/config"
	"noteapi/pkg/logger"
)

// ServiceName имя сервиса в логах конфигурации.
const ServiceName = "notes"

// Config представляет полную конфигурацию сервиса заметок.
type Config struct {
	Postgres   PostgresConfig   `yaml:"postgres"`
	HTTP       HTTPConfig       `yaml:"http"`
	Grammar    GrammarConfig    `yaml:"grammar"`
	Redis      RedisConfig      `yaml:"redis"`
	Logging    LoggingConfig    `yaml:"logging"`
	Shutdown   ShutdownConfig   `yaml:"shutdown"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "notes configuration",
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("grammar_api_url", cfg.Grammar.URL),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode))

	return cfg, nil
}
