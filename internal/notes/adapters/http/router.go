// Package http содержит компоненты HTTP сервера заметок.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"noteapi/internal/notes/adapters/http/middleware"
	"noteapi/internal/notes/adapters/http/notes"
)

// DefaultBodyLimit предел тела запроса по умолчанию, должен превышать notes.MaxUploadSize.
const DefaultBodyLimit = 6 << 20

// ErrMsgRouteNotFound сообщение для несуществующих маршрутов.
const ErrMsgRouteNotFound = "Route not found"

// ServerConfig параметры fiber приложения.
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// NewApp создает fiber приложение с общим обработчиком ошибок.
func NewApp(cfg ServerConfig) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}

	return fiber.New(fiber.Config{
		AppName:      "noteapi",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    bodyLimit,
		ErrorHandler: notes.ErrorHandler,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, notesHandler *notes.Handler, health *HealthHandler) {
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", health.Check)

	// Статические пути регистрируются раньше /:id.
	notesRoutes := app.Group("/notes")
	notesRoutes.Post("/upload", notesHandler.UploadNote)
	notesRoutes.Post("/check-grammar", notesHandler.CheckGrammar)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Get("/:id/html", notesHandler.GetNoteHTML)
	notesRoutes.Get("/:id", notesHandler.GetNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(_ fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, ErrMsgRouteNotFound)
	})
}
