package create_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_availability: invalid input data")

	// ErrInvalidTimeRange возвращается, когда конец окна не позже начала
	ErrInvalidTimeRange = errors.New("create_availability: end time must be after start time")

	// ErrInvalidInterval возвращается при шаге вне допустимого списка
	ErrInvalidInterval = errors.New("create_availability: interval is not allowed")

	// ErrProviderNotFound возвращается, когда пользователь не найден
	ErrProviderNotFound = errors.New("create_availability: provider not found")

	// ErrNotProvider возвращается, когда окно пытается создать не провайдер
	ErrNotProvider = errors.New("create_availability: user is not a provider")

	// ErrOverlapsExistingSlots возвращается, когда окно пересекается с уже
	// существующими слотами провайдера
	ErrOverlapsExistingSlots = errors.New("create_availability: window overlaps existing slots")

	// ErrWindowAlreadyExists возвращается при дубликате окна
	ErrWindowAlreadyExists = errors.New("create_availability: window already exists")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_availability: internal error")
)
