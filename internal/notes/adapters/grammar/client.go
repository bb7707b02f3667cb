// Package grammar содержит клиент внешнего сервиса проверки грамматики.
package grammar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3/client"
	"go.uber.org/zap"

	"noteapi/internal/notes/domain/entities"
	"noteapi/internal/notes/ports/services"
	"noteapi/internal/notes/resilience"
	"noteapi/pkg/logger"
)

// Language фиксированный язык проверки.
const Language = "en"

// ServiceName имя сервиса в ошибках и логах.
const ServiceName = "grammar"

// DefaultTimeout таймаут запроса, если он не задан.
const DefaultTimeout = 10 * time.Second

// Константы для логирования.
const (
	LogCheckStarted  = "sending text to grammar API"
	LogCheckFinished = "grammar API responded"
	LogCheckFailed   = "grammar API request failed"
)

// ErrUnexpectedStatus ответ сервиса со статусом вне диапазона 2xx.
var ErrUnexpectedStatus = errors.New("grammar API returned unexpected status")

// Config настройки клиента.
type Config struct {
	URL     string
	Timeout time.Duration
	Breaker resilience.CircuitBreakerConfig
}

// Client реализует services.GrammarChecker.
type Client struct {
	url     string
	timeout time.Duration
	http    *client.Client
	breaker *resilience.CircuitBreaker
}

var _ services.GrammarChecker = (*Client)(nil)

// NewClient создает клиент сервиса грамматики.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:     cfg.URL,
		timeout: timeout,
		http:    client.New(),
		breaker: resilience.NewCircuitBreaker(ServiceName, cfg.Breaker),
	}
}

type checkResponse struct {
	Matches []entities.GrammarMatch `json:"matches"`
}

// CheckGrammar отправляет текст на проверку одной попыткой и возвращает найденные совпадения.
func (c *Client) CheckGrammar(ctx context.Context, text string) ([]entities.GrammarMatch, error) {
	log := logger.Log(ctx).With(zap.String("method", "GrammarClient.CheckGrammar"))
	log.Debug(ctx, LogCheckStarted, zap.Int("textLength", len(text)))

	if err := ctx.Err(); err != nil {
		return nil, classify(ctx, err)
	}

	var body []byte
	err := c.breaker.Execute(ctx, func() error {
		var err error
		body, err = c.post(ctx, text)
		return err
	})
	if err != nil {
		err = classify(ctx, err)
		log.Warn(ctx, LogCheckFailed, zap.Error(err))
		return nil, err
	}

	matches, err := decode(body)
	if err != nil {
		log.Warn(ctx, LogCheckFailed, zap.Error(err))
		return nil, err
	}

	log.Debug(ctx, LogCheckFinished, zap.Int("matches", len(matches)))
	return matches, nil
}

func (c *Client) post(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.http.Post(c.url, client.Config{
		Ctx:     ctx,
		Timeout: c.timeout,
		Header: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Accept":       "application/json",
		},
		FormData: map[string]string{
			"text":     text,
			"language": Language,
		},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}

	return append([]byte(nil), resp.Body()...), nil
}

// classify превращает ошибку вызова в ExternalServiceError.
// Отмена запроса вызывающей стороной не является отказом сервиса и возвращается без изменений.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	var ext *entities.ExternalServiceError
	if errors.As(err, &ext) {
		return ext
	}
	return entities.NewExternalServiceError(ServiceName, err)
}

func decode(body []byte) ([]entities.GrammarMatch, error) {
	if len(body) == 0 {
		return nil, entities.NewExternalServiceError(ServiceName, entities.ErrInvalidGrammarResponse)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, entities.NewExternalServiceError(ServiceName, entities.ErrInvalidGrammarResponse)
	}

	var resp checkResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, entities.NewExternalServiceError(ServiceName, entities.ErrInvalidGrammarResponse)
	}
	if resp.Matches == nil {
		return []entities.GrammarMatch{}, nil
	}
	return resp.Matches, nil
}
