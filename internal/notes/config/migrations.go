package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

const filePrefix = "file://"

// MigrationsConfig расположение SQL миграций.
type MigrationsConfig struct {
	Dir string `yaml:"dir" env:"NOTES_MIGRATIONS_DIR" env-default:"migrations/notes"`
}

// SourceURL возвращает URL источника для golang-migrate. Относительный путь приводится к абсолютному.
func (c *MigrationsConfig) SourceURL() (string, error) {
	if strings.Contains(c.Dir, "://") {
		return c.Dir, nil
	}
	abs, err := filepath.Abs(c.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve migrations dir: %w", err)
	}
	return filePrefix + abs, nil
}
