// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"noteapi/internal/notes/domain/entities"
)

// ErrNoteNotFound возвращается хранилищем, если строка с заданным id отсутствует.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, id int64) (*entities.Note, error)
	List(ctx context.Context) ([]*entities.Note, error)
	Delete(ctx context.Context, id int64) error
}
