package book_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	SlotID          int64                  // ID слота
	CustomerID      int64                  // ID клиента (действующий пользователь)
	AppointmentType domain.AppointmentType // Тип визита
	PatientNotes    string                 // Заметки пациента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	SlotID          int64
	CustomerID      int64
	ProviderID      int64
	AppointmentType domain.AppointmentType
	PatientNotes    string
	Status          domain.AppointmentStatus
	StartTime       time.Time
	EndTime         time.Time
	CreatedAt       time.Time
}
