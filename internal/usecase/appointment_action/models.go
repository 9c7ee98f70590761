package appointment_action

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на переход записи по жизненному циклу
type Request struct {
	AppointmentID int64                    // ID записи
	ActorID       int64                    // ID действующего пользователя
	Action        domain.AppointmentAction // Запрошенное действие
}

// Response модель ответа с записью после перехода
type Response struct {
	ID              int64
	SlotID          int64
	CustomerID      int64
	ProviderID      int64
	AppointmentType domain.AppointmentType
	Status          domain.AppointmentStatus
	StartTime       time.Time
	EndTime         time.Time
	UpdatedAt       time.Time
}
