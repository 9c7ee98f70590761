package update_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_availability: invalid input data")

	// ErrInvalidTimeRange возвращается, когда конец окна не позже начала
	ErrInvalidTimeRange = errors.New("update_availability: end time must be after start time")

	// ErrInvalidInterval возвращается при шаге вне допустимого списка
	ErrInvalidInterval = errors.New("update_availability: interval is not allowed")

	// ErrProviderNotFound возвращается, когда пользователь не найден
	ErrProviderNotFound = errors.New("update_availability: provider not found")

	// ErrNotProvider возвращается, когда окно пытается изменить не провайдер
	ErrNotProvider = errors.New("update_availability: user is not a provider")

	// ErrWindowNotFound возвращается, когда окно не найдено или принадлежит другому провайдеру
	ErrWindowNotFound = errors.New("update_availability: window not found")

	// ErrHasBookedSlots возвращается, когда в дате окна есть занятые слоты
	// Изменение времени окна при живых записях запрещено
	ErrHasBookedSlots = errors.New("update_availability: date has booked slots")

	// ErrWindowAlreadyExists возвращается при дубликате окна
	ErrWindowAlreadyExists = errors.New("update_availability: window already exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_availability: internal error")
)
