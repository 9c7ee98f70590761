package create_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание окна доступности
type Request struct {
	ProviderID      int64            // ID провайдера (действующий пользователь)
	Date            time.Time        // Дата окна (без времени)
	StartTime       types.TimeString // Начало окна, например "09:00"
	EndTime         types.TimeString // Конец окна, например "17:00"
	IntervalMinutes int              // Шаг нарезки в минутах
}

// Response модель ответа с созданным окном
type Response struct {
	ID              int64
	ProviderID      int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	IntervalMinutes int
	GeneratedSlots  int // Число пройденных шагов генерации (включая уже существовавшие слоты)
	CreatedAt       time.Time
}
