// Package cache содержит кэш отрендеренного HTML заметок поверх Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"noteapi/internal/notes/ports/services"
	"noteapi/pkg/logger"
)

// KeyPrefix префикс ключей кэша HTML.
const KeyPrefix = "notes:html:"

// DefaultTTL время жизни записи, если оно не задано.
const DefaultTTL = time.Hour

// Константы для логирования.
const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"

	ErrorFailedToGet    = "failed to get rendered note from redis"
	ErrorFailedToSet    = "failed to set rendered note in redis"
	ErrorFailedToDelete = "failed to delete rendered note from redis"
)

// Store операции key-value, которые нужны кэшу.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RenderCache реализует services.RenderCache.
type RenderCache struct {
	store Store
	ttl   time.Duration
}

var _ services.RenderCache = (*RenderCache)(nil)

// NewRenderCache создает кэш с заданным TTL.
func NewRenderCache(store Store, ttl time.Duration) *RenderCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RenderCache{store: store, ttl: ttl}
}

// Key возвращает ключ Redis для заметки.
func Key(noteID int64) string {
	return KeyPrefix + strconv.FormatInt(noteID, 10)
}

// Get возвращает HTML заметки. Второе значение false, если записи нет.
func (c *RenderCache) Get(ctx context.Context, noteID int64) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.Int64("noteID", noteID))

	value, err := c.store.Get(ctx, Key(noteID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	log.Debug(ctx, "render cache hit")
	return value, true, nil
}

// Set сохраняет HTML заметки.
func (c *RenderCache) Set(ctx context.Context, noteID int64, html string) error {
	if err := c.store.Set(ctx, Key(noteID), html, c.ttl); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToSet,
			zap.String("method", LogMethodSet), zap.Int64("noteID", noteID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// Delete удаляет HTML заметки.
func (c *RenderCache) Delete(ctx context.Context, noteID int64) error {
	if err := c.store.Delete(ctx, Key(noteID)); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete,
			zap.String("method", LogMethodDelete), zap.Int64("noteID", noteID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}
