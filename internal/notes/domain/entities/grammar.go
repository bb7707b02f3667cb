package entities

import (
	"bytes"
	"encoding/json"
)

// GrammarMatch одна найденная проблема в проверяемом тексте.
//
// Исходный JSON элемента сохраняется и возвращается клиенту без изменений,
// поэтому элементы с неожиданной структурой не теряют поля.
type GrammarMatch struct {
	Message      string   `json:"message"`
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Replacements []string `json:"replacements"`

	raw json.RawMessage
}

type grammarMatchFields struct {
	Message      string            `json:"message"`
	Offset       int               `json:"offset"`
	Length       int               `json:"length"`
	Replacements []json.RawMessage `json:"replacements"`
}

// UnmarshalJSON разбирает известные поля по возможности и запоминает исходный JSON.
func (m *GrammarMatch) UnmarshalJSON(data []byte) error {
	m.raw = append(json.RawMessage(nil), data...)

	var fields grammarMatchFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	m.Message = fields.Message
	m.Offset = fields.Offset
	m.Length = fields.Length
	m.Replacements = make([]string, 0, len(fields.Replacements))
	for _, r := range fields.Replacements {
		if s, ok := replacementValue(r); ok {
			m.Replacements = append(m.Replacements, s)
		}
	}
	return nil
}

// MarshalJSON возвращает исходный JSON, если он есть.
func (m GrammarMatch) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}
	replacements := m.Replacements
	if replacements == nil {
		replacements = []string{}
	}
	return json.Marshal(struct {
		Message      string   `json:"message"`
		Offset       int      `json:"offset"`
		Length       int      `json:"length"`
		Replacements []string `json:"replacements"`
	}{m.Message, m.Offset, m.Length, replacements})
}

// replacementValue принимает как строку, так и объект вида {"value": "..."}.
func replacementValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var obj struct {
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Value != nil {
		return *obj.Value, true
	}
	return "", false
}
