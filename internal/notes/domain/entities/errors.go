package entities

import "errors"

// ErrInvalidGrammarResponse ответ сервиса грамматики без пригодного тела.
var ErrInvalidGrammarResponse = errors.New("invalid response from grammar API")

// ExternalServiceError отказ внешнего сервиса. Message уходит клиенту, Err остается для логов и errors.Is.
type ExternalServiceError struct {
	Service string
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return e.Message
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewExternalServiceError оборачивает err, сохраняя его сообщение.
func NewExternalServiceError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Message: err.Error(), Err: err}
}
