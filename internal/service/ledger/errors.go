package ledger

import "errors"

var (
	// ErrBookingNotFound возвращается, когда в авторитетной проекции нет записи
	ErrBookingNotFound = errors.New("ledger: booking not found")

	// ErrAlreadyExists возвращается при повторной записи с тем же id
	ErrAlreadyExists = errors.New("ledger: booking already exists")

	// ErrStaleRecord статус записи изменился с момента чтения вызывающей стороной
	ErrStaleRecord = errors.New("ledger: booking was modified concurrently")

	// ErrConsistencyViolation переход применен к авторитетной записи,
	// но в одной из проекций нет записи с таким id
	ErrConsistencyViolation = errors.New("ledger: projection is missing the booking")
)
