package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// AppointmentType classifies what the visit is for
type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "followup"
	TypeCheckup      AppointmentType = "checkup"
	TypeEmergency    AppointmentType = "emergency"
	TypeSpecialist   AppointmentType = "specialist"
)

// AppointmentAction is a lifecycle transition requested by an actor
type AppointmentAction string

const (
	ActionApprove  AppointmentAction = "approve"
	ActionReject   AppointmentAction = "reject"
	ActionCancel   AppointmentAction = "cancel"
	ActionComplete AppointmentAction = "complete"
)

// Appointment is the booking of a single slot by a customer.
// Exactly one appointment may reference a slot at a time; terminal
// appointments are kept forever as history.
type Appointment struct {
	ID              int64
	SlotID          int64
	CustomerID      int64
	AppointmentType AppointmentType
	PatientNotes    string
	Status          AppointmentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTerminal returns true if the appointment reached a final state.
func (a *Appointment) IsTerminal() bool {
	for _, s := range TerminalStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// HoldsSlot returns true if the appointment currently keeps its slot booked.
func (a *Appointment) HoldsSlot() bool {
	return a.Status == StatusPending || a.Status == StatusApproved
}

// ValidAppointmentType reports whether the given type is one of the known
// visit types.
func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case TypeConsultation, TypeFollowUp, TypeCheckup, TypeEmergency, TypeSpecialist:
		return true
	default:
		return false
	}
}

// ValidAppointmentStatus reports whether the given status is known.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// ValidAppointmentAction reports whether the given action is known.
func ValidAppointmentAction(a AppointmentAction) bool {
	switch a {
	case ActionApprove, ActionReject, ActionCancel, ActionComplete:
		return true
	default:
		return false
	}
}

// AppointmentWithSlot is an appointment joined with its slot, as read by the
// list and detail queries.
type AppointmentWithSlot struct {
	Appointment
	Slot Slot
}

// AppointmentsFilter фильтр для выборки записей
// Ровно одно из полей CustomerID / ProviderID должно быть задано:
// записи выбираются либо по клиенту, либо по слотам провайдера
type AppointmentsFilter struct {
	CustomerID *int64
	ProviderID *int64
	Status     *AppointmentStatus
	From       *time.Time // нижняя граница start_time слота (включительно)
	To         *time.Time // верхняя граница start_time слота (не включительно)
}
