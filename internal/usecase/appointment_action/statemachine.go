package appointment_action

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// transition разрешённый переход записи по жизненному циклу
type transition struct {
	to          domain.AppointmentStatus
	releaseSlot bool   // переход освобождает слот
	subject     string // тема письма обеим сторонам
}

// resolveTransition сверяет тройку (статус, действие, актор) с таблицей
// переходов. Любая тройка вне таблицы - ErrIllegalTransition без мутаций
//
// Таблица:
//
//	pending  + cancel   (клиент записи)    -> cancelled, слот освобождается
//	pending  + approve  (провайдер слота)  -> approved
//	pending  + reject   (провайдер слота)  -> rejected,  слот освобождается
//	approved + cancel   (клиент записи)    -> cancelled, слот освобождается
//	approved + complete (провайдер слота)  -> completed, слот уже начался
func resolveTransition(appt *domain.AppointmentWithSlot, actorID int64, action domain.AppointmentAction, now time.Time) (*transition, error) {
	isCustomer := appt.CustomerID == actorID
	isProvider := appt.Slot.ProviderID == actorID

	switch {
	case appt.Status == domain.StatusPending && action == domain.ActionCancel && isCustomer:
		return &transition{to: domain.StatusCancelled, releaseSlot: true, subject: "Appointment Cancelled"}, nil

	case appt.Status == domain.StatusPending && action == domain.ActionApprove && isProvider:
		return &transition{to: domain.StatusApproved, subject: "Appointment Approved"}, nil

	case appt.Status == domain.StatusPending && action == domain.ActionReject && isProvider:
		return &transition{to: domain.StatusRejected, releaseSlot: true, subject: "Appointment Rejected"}, nil

	case appt.Status == domain.StatusApproved && action == domain.ActionCancel && isCustomer:
		return &transition{to: domain.StatusCancelled, releaseSlot: true, subject: "Appointment Cancelled"}, nil

	case appt.Status == domain.StatusApproved && action == domain.ActionComplete && isProvider:
		// Guard: завершить можно только начавшийся приём
		if !appt.Slot.HasStarted(now) {
			return nil, ErrIllegalTransition
		}
		return &transition{to: domain.StatusCompleted, subject: "Appointment Completed"}, nil

	default:
		return nil, ErrIllegalTransition
	}
}
