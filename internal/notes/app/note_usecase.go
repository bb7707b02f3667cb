// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"noteapi/internal/notes/domain/entities"
	"noteapi/internal/notes/ports/repositories"
	"noteapi/internal/notes/ports/services"
	"noteapi/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound        = errors.New("note not found")
	ErrInvalidArgument = errors.New("title and content are required")
)

// Сообщения об ошибках и логах.
const (
	ErrMsgCreateNote = "failed to create note"
	ErrMsgGetNote    = "failed to get note"
	ErrMsgListNotes  = "failed to list notes"
	ErrMsgDeleteNote = "failed to delete note"
	ErrMsgRenderNote = "failed to render note"

	LogCacheReadFailed  = "render cache read failed"
	LogCacheWriteFailed = "render cache write failed"
	LogCacheEvictFailed = "render cache eviction failed"
)

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	renderer services.MarkdownRenderer
	cache    services.RenderCache
}

// Option настраивает NoteUseCase.
type Option func(*NoteUseCase)

// WithRenderCache включает кэширование отрендеренного HTML.
func WithRenderCache(cache services.RenderCache) Option {
	return func(uc *NoteUseCase) {
		uc.cache = cache
	}
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, renderer services.MarkdownRenderer, opts ...Option) *NoteUseCase {
	uc := &NoteUseCase{
		noteRepo: noteRepo,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Create сохраняет новую заметку. Пустой заголовок или содержимое не доходят до хранилища.
func (uc *NoteUseCase) Create(ctx context.Context, title, content string) (*entities.Note, error) {
	note := entities.NewNote(title, content)
	if !note.Valid() {
		return nil, ErrInvalidArgument
	}

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateNote, err)
	}

	return created, nil
}

// FindAll возвращает все заметки в порядке хранилища.
func (uc *NoteUseCase) FindAll(ctx context.Context) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListNotes, err)
	}
	return notes, nil
}

// FindOne возвращает заметку по id.
func (uc *NoteUseCase) FindOne(ctx context.Context, id int64) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetNote, err)
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

// Delete удаляет заметку по id.
func (uc *NoteUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.noteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgDeleteNote, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Delete(ctx, id); err != nil {
			logger.Log(ctx).Warn(ctx, LogCacheEvictFailed, zap.Int64("noteID", id), zap.Error(err))
		}
	}
	return nil
}

// RenderToHTML возвращает содержимое заметки, преобразованное в HTML.
// Существование заметки всегда проверяется в хранилище, кэш используется только для результата рендеринга.
func (uc *NoteUseCase) RenderToHTML(ctx context.Context, id int64) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.RenderToHTML"), zap.Int64("noteID", id))

	note, err := uc.FindOne(ctx, id)
	if err != nil {
		return "", err
	}

	if uc.cache != nil {
		html, ok, err := uc.cache.Get(ctx, id)
		switch {
		case err != nil:
			log.Warn(ctx, LogCacheReadFailed, zap.Error(err))
		case ok:
			return html, nil
		}
	}

	html, err := uc.renderer.Render(ctx, note.Content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgRenderNote, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, id, html); err != nil {
			log.Warn(ctx, LogCacheWriteFailed, zap.Error(err))
		}
	}

	return html, nil
}
