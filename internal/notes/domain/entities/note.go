// Package entities defines the domain entities for the notes service.
package entities

import "time"

// Note представляет собой сохраненную заметку.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNote создает заметку, еще не сохраненную в хранилище.
func NewNote(title, content string) *Note {
	return &Note{
		Title:   title,
		Content: content,
	}
}

// Valid сообщает, что заголовок и содержимое не пусты.
func (n *Note) Valid() bool {
	return n != nil && n.Title != "" && n.Content != ""
}
