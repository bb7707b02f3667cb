// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"noteapi/internal/notes/domain/entities"
	"noteapi/internal/notes/ports/repositories"
	"noteapi/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrMsgCreateNote = "failed to create note"
	ErrMsgGetNote    = "failed to get note"
	ErrMsgListNotes  = "failed to list notes"
	ErrMsgScanNote   = "failed to scan note"
	ErrMsgIterate    = "error iterating rows"
	ErrMsgDeleteNote = "failed to delete note"
)

// PgxPoolInterface подмножество методов pgxpool.Pool, используемое репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку. Id и время создания назначает база данных.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.Int("contentLength", len(note.Content)))

	query := `
        INSERT INTO notes (title, content)
        VALUES ($1, $2)
        RETURNING id, title, content, created_at
    `

	var created entities.Note
	err := r.pool.QueryRow(ctx, query, note.Title, note.Content).
		Scan(&created.ID, &created.Title, &created.Content, &created.CreatedAt)
	if err != nil {
		log.Error(ctx, ErrMsgCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateNote, err)
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", created.ID))
	return &created, nil
}

// GetByID получает заметку по id.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"), zap.Int64("noteID", id))

	query := `
        SELECT id, title, content, created_at
        FROM notes
        WHERE id = $1
    `

	var note entities.Note
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found")
			return nil, repositories.ErrNoteNotFound
		}
		log.Error(ctx, ErrMsgGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgGetNote, err)
	}

	return &note, nil
}

// List возвращает все заметки по возрастанию id.
func (r *NoteRepository) List(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.List"))

	rows, err := r.pool.Query(ctx, `SELECT id, title, content, created_at FROM notes ORDER BY id ASC`)
	if err != nil {
		log.Error(ctx, ErrMsgListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgListNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.CreatedAt); err != nil {
			log.Error(ctx, ErrMsgScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrMsgScanNote, err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrMsgIterate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrMsgIterate, err)
	}

	log.Debug(ctx, "notes listed", zap.Int("count", len(notes)))
	return notes, nil
}

// Delete удаляет заметку. Если строка не найдена, возвращается repositories.ErrNoteNotFound.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"), zap.Int64("noteID", id))

	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, ErrMsgDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrMsgDeleteNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for deletion")
		return repositories.ErrNoteNotFound
	}

	return nil
}
