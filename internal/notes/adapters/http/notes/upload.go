package notes

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// MaxUploadSize предельный размер загружаемого файла.
const MaxUploadSize = 5 << 20

// UploadField имя поля multipart с файлом.
const UploadField = "file"

// Сообщения об отклонении загрузки.
const (
	ErrMsgFileRequired = "File is required"
	ErrMsgSingleFile   = "Only one file is allowed"
	ErrMsgMarkdownOnly = "Only .md files are allowed"
	ErrMsgFileTooLarge = "File too large"
	ErrMsgReadUpload   = "failed to read uploaded file"
	markdownExtension  = ".md"
)

// UploadError отказ в приеме файла.
type UploadError struct {
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

// Ошибки загрузки.
var (
	ErrFileRequired = &UploadError{Status: http.StatusBadRequest, Message: ErrMsgFileRequired}
	ErrSingleFile   = &UploadError{Status: http.StatusBadRequest, Message: ErrMsgSingleFile}
	ErrMarkdownOnly = &UploadError{Status: http.StatusBadRequest, Message: ErrMsgMarkdownOnly}
	ErrFileTooLarge = &UploadError{Status: http.StatusRequestEntityTooLarge, Message: ErrMsgFileTooLarge}
)

// UploadedFile принятый файл.
type UploadedFile struct {
	Filename string
	Data     []byte
}

// Text декодирует содержимое как UTF-8, заменяя некорректные последовательности на U+FFFD.
func (f *UploadedFile) Text() string {
	return strings.ToValidUTF8(string(f.Data), "\uFFFD")
}

// acceptUpload проверяет единственный файл запроса. Размер проверяется до чтения,
// а само чтение ограничено limit+1 байтами.
func acceptUpload(ctx fiber.Ctx, limit int64) (*UploadedFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, ErrFileRequired
	}

	total := 0
	for _, headers := range form.File {
		total += len(headers)
	}
	files := form.File[UploadField]
	switch {
	case len(files) == 0:
		return nil, ErrFileRequired
	case total > 1:
		return nil, ErrSingleFile
	}

	header := files[0]
	if !strings.EqualFold(filepath.Ext(header.Filename), markdownExtension) {
		return nil, ErrMarkdownOnly
	}
	if header.Size > limit {
		return nil, ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadUpload, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadUpload, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}

	return &UploadedFile{Filename: header.Filename, Data: data}, nil
}
