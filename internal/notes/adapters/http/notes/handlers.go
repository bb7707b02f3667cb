// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteapi/internal/notes/adapters/http/middleware"
	"noteapi/internal/notes/app"
	"noteapi/internal/notes/ports/api"
	"noteapi/internal/notes/ports/services"
	"noteapi/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateNote   = "handling create note request"
	LogHandlerUploadNote   = "handling upload note request"
	LogHandlerCheckGrammar = "handling check grammar request"
	LogHandlerListNotes    = "handling list notes request"
	LogHandlerGetNote      = "handling get note request"
	LogHandlerGetNoteHTML  = "handling get note html request"
	LogHandlerDeleteNote   = "handling delete note request"
	LogUploadRejected      = "upload rejected"

	ErrMsgDeleteFailed = "Failed to delete note"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notes         api.NoteService
	grammar       services.GrammarChecker
	maxUploadSize int64
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes api.NoteService, grammar services.GrammarChecker) *Handler {
	return &Handler{
		notes:         notes,
		grammar:       grammar,
		maxUploadSize: MaxUploadSize,
	}
}

// CreateNote POST /notes.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreateNote)

	var req CreateNoteRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	note, err := h.notes.Create(requestCtx, req.Title, req.Content)
	if err != nil {
		return err
	}

	return respond(ctx, http.StatusCreated, toNoteResponse(note))
}

// UploadNote POST /notes/upload. Имя файла становится заголовком, содержимое текстом заметки.
func (h *Handler) UploadNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UploadNote"))
	log.Debug(requestCtx, LogHandlerUploadNote)

	file, err := acceptUpload(ctx, h.maxUploadSize)
	if err != nil {
		var uploadErr *UploadError
		if errors.As(err, &uploadErr) {
			log.Info(requestCtx, LogUploadRejected, zap.String("reason", uploadErr.Message))
		}
		return err
	}

	note, err := h.notes.Create(requestCtx, file.Filename, file.Text())
	if err != nil {
		return err
	}

	return respond(ctx, http.StatusCreated, toNoteResponse(note))
}

// CheckGrammar POST /notes/check-grammar.
func (h *Handler) CheckGrammar(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCheckGrammar)

	var req GrammarCheckRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	matches, err := h.grammar.CheckGrammar(requestCtx, *req.Text)
	if err != nil {
		return err
	}

	return respond(ctx, http.StatusOK, matches)
}

// ListNotes GET /notes.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes)

	notes, err := h.notes.FindAll(requestCtx)
	if err != nil {
		return err
	}

	return respond(ctx, http.StatusOK, toNoteResponses(notes))
}

// GetNote GET /notes/:id.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetNote)

	id, err := parseNoteID(ctx)
	if err != nil {
		return err
	}

	note, err := h.notes.FindOne(requestCtx, id)
	if err != nil {
		return err
	}

	return respond(ctx, http.StatusOK, toNoteResponse(note))
}

// GetNoteHTML GET /notes/:id/html.
func (h *Handler) GetNoteHTML(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetNoteHTML)

	id, err := parseNoteID(ctx)
	if err != nil {
		return err
	}

	html, err := h.notes.RenderToHTML(requestCtx, id)
	if err != nil {
		return err
	}

	return respond(ctx, http.StatusOK, html)
}

// DeleteNote DELETE /notes/:id.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteNote)

	id, err := parseNoteID(ctx)
	if err != nil {
		return err
	}

	if err := h.notes.Delete(requestCtx, id); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			return fmt.Errorf("%s %d: %w", ErrMsgDeleteFailed, id, err)
		}
		return err
	}

	return respond(ctx, http.StatusOK, fmt.Sprintf("Note %d deleted successfully", id))
}
