package config

import "time"

// GrammarConfig настройки внешнего сервиса проверки грамматики.
type GrammarConfig struct {
	URL     string        `yaml:"url" env:"NOTES_GRAMMAR_API_URL,GRAMMAR_API" env-default:"https://api.languagetool.org/v2/check"`
	Timeout time.Duration `yaml:"timeout" env:"NOTES_GRAMMAR_TIMEOUT" env-default:"10s"`

	BreakerErrorThreshold int           `yaml:"breaker_error_threshold" env:"NOTES_GRAMMAR_BREAKER_ERRORS" env-default:"5"`
	BreakerOpenTimeout    time.Duration `yaml:"breaker_open_timeout" env:"NOTES_GRAMMAR_BREAKER_OPEN_TIMEOUT" env-default:"30s"`
}
