// Package markdown преобразует Markdown в HTML.
package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"noteapi/internal/notes/ports/services"
	"noteapi/pkg/logger"
)

// ErrMsgRender сообщение об ошибке рендеринга.
const ErrMsgRender = "failed to render markdown"

// Renderer рендерит GitHub Flavored Markdown. Сырой HTML из исходника пропускается без изменений.
type Renderer struct {
	md goldmark.Markdown
}

var _ services.MarkdownRenderer = (*Renderer)(nil)

// NewRenderer создает рендерер с расширением GFM и пропуском сырого HTML.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render возвращает HTML для markdown. Пустая строка дает пустой результат.
func (r *Renderer) Render(ctx context.Context, markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		logger.Log(ctx).Error(ctx, ErrMsgRender, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrMsgRender, err)
	}
	return buf.String(), nil
}
