package config

import (
	"time"

	"noteapi/pkg/db/redis"
)

// RedisConfig настройки кэша отрендеренных заметок. При Enabled=false кэш не используется.
type RedisConfig struct {
	Enabled   bool          `yaml:"enabled" env:"NOTES_REDIS_ENABLED" env-default:"false"`
	Host      string        `yaml:"host" env:"NOTES_REDIS_HOST" env-default:"localhost"`
	Port      int           `yaml:"port" env:"NOTES_REDIS_PORT" env-default:"6379"`
	Password  string        `yaml:"password" env:"NOTES_REDIS_PASSWORD" env-default:""`
	DB        int           `yaml:"db" env:"NOTES_REDIS_DB" env-default:"0"`
	PoolSize  int           `yaml:"pool_size" env:"NOTES_REDIS_POOL_SIZE" env-default:"10"`
	Timeout   time.Duration `yaml:"timeout" env:"NOTES_REDIS_TIMEOUT" env-default:"3s"`
	RenderTTL time.Duration `yaml:"render_ttl" env:"NOTES_REDIS_RENDER_TTL" env-default:"1h"`
}

// ClientConfig возвращает настройки клиента pkg/db/redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
