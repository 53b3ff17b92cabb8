package projection

import "errors"

var (
	// ErrNotFound возвращается, когда в проекции нет записи с таким id
	ErrNotFound = errors.New("projection.repository: entry not found")

	// ErrLoad возвращается при ошибке чтения документа проекции
	ErrLoad = errors.New("projection.repository: failed to load document")

	// ErrSave возвращается при ошибке записи документа проекции
	ErrSave = errors.New("projection.repository: failed to save document")

	// ErrDecode возвращается, когда документ не удалось разобрать
	ErrDecode = errors.New("projection.repository: failed to decode document")
)
