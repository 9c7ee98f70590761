package delete_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("delete_availability: invalid input data")

	// ErrWindowNotFound возвращается, когда окно не найдено или принадлежит другому провайдеру
	ErrWindowNotFound = errors.New("delete_availability: window not found")

	// ErrHasBookedSlots возвращается, когда в дате окна есть занятые слоты
	ErrHasBookedSlots = errors.New("delete_availability: date has booked slots")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("delete_availability: internal error")
)
