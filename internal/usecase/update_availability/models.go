package update_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на изменение окна доступности
type Request struct {
	WindowID        int64            // ID окна
	ProviderID      int64            // ID провайдера (действующий пользователь)
	Date            time.Time        // Новая дата окна
	StartTime       types.TimeString // Новое начало окна
	EndTime         types.TimeString // Новый конец окна
	IntervalMinutes int              // Новый шаг нарезки
}

// Response модель ответа с обновлённым окном
type Response struct {
	ID              int64
	ProviderID      int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	IntervalMinutes int
	DeletedSlots    int64 // Число удалённых свободных слотов старой даты
	GeneratedSlots  int   // Число шагов генерации по новым параметрам
}
