package appointment_action

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointment_action: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment_action: appointment not found")

	// ErrIllegalTransition возвращается, когда тройка (статус, действие, актор)
	// не входит в таблицу переходов или не выполнен guard перехода
	ErrIllegalTransition = errors.New("appointment_action: illegal transition")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("appointment_action: internal error")
)
