package notes

import "noteapi/internal/notes/domain/entities"

// CreateNoteRequest тело запроса POST /notes.
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// GrammarCheckRequest тело запроса POST /notes/check-grammar.
type GrammarCheckRequest struct {
	Text *string `json:"text" validate:"required,max=5000"`
}

// NoteResponse представление заметки в ответе, без времени создания.
type NoteResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func toNoteResponse(note *entities.Note) NoteResponse {
	return NoteResponse{
		ID:      note.ID,
		Title:   note.Title,
		Content: note.Content,
	}
}

func toNoteResponses(notes []*entities.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteResponse(note))
	}
	return out
}
