package appointments

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	// или действующий пользователь не является её стороной.
	// Чужая запись неотличима от несуществующей
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrNotProvider возвращается при запросе провайдерской выборки
	// пользователем без роли провайдера
	ErrNotProvider = errors.New("user is not a provider")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
