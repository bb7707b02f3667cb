// Package services defines the external capabilities the notes use cases depend on.
package services

import (
	"context"

	"noteapi/internal/notes/domain/entities"
)

// MarkdownRenderer преобразует markdown в HTML.
type MarkdownRenderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// RenderCache хранит отрендеренный HTML по id заметки.
// Get возвращает ok=false при промахе.
type RenderCache interface {
	Get(ctx context.Context, noteID int64) (html string, ok bool, err error)
	Set(ctx context.Context, noteID int64, html string) error
	Delete(ctx context.Context, noteID int64) error
}

// GrammarChecker проверяет грамматику текста во внешнем сервисе.
type GrammarChecker interface {
	CheckGrammar(ctx context.Context, text string) ([]entities.GrammarMatch, error)
}
