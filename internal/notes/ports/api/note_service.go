// Package api определяет интерфейсы бизнес-логики, которые использует HTTP слой.
package api

import (
	"context"

	"noteapi/internal/notes/domain/entities"
)

// NoteService операции над заметками.
type NoteService interface {
	Create(ctx context.Context, title, content string) (*entities.Note, error)
	FindAll(ctx context.Context) ([]*entities.Note, error)
	FindOne(ctx context.Context, id int64) (*entities.Note, error)
	Delete(ctx context.Context, id int64) error
	RenderToHTML(ctx context.Context, id int64) (string, error)
}
