package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение записей действующего пользователя
// Выборка идёт либо по клиенту, либо по слотам провайдера - в зависимости
// от роли действующего пользователя
type ListAppointmentsRequest struct {
	ActorID    int64      `json:"actorId"`
	AsProvider bool       `json:"asProvider"`
	Status     *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	From       *time.Time `json:"from,omitempty"`   // Нижняя граница начала слота (опционально)
	To         *time.Time `json:"to,omitempty"`     // Верхняя граница начала слота (опционально)
}

// ToDomainFilter конвертирует запрос в domain-фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		From: r.From,
		To:   r.To,
	}

	if r.AsProvider {
		filter.ProviderID = &r.ActorID
	} else {
		filter.CustomerID = &r.ActorID
	}

	if r.Status != nil {
		status := domain.AppointmentStatus(*r.Status)
		if !domain.ValidAppointmentStatus(status) {
			return domain.AppointmentsFilter{}, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse проекция записи для API
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	SlotID          int64     `json:"slotId"`
	CustomerID      int64     `json:"customerId"`
	ProviderID      int64     `json:"providerId"`
	AppointmentType string    `json:"appointmentType"`
	PatientNotes    string    `json:"patientNotes,omitempty"`
	Status          string    `json:"status"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	FormattedTime   string    `json:"formattedTime"`
	FormattedDate   string    `json:"formattedDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Count        int                   `json:"count"`
}

// FromDomainAppointment конвертирует domain.AppointmentWithSlot в AppointmentResponse
func FromDomainAppointment(a *domain.AppointmentWithSlot) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              a.ID,
		SlotID:          a.SlotID,
		CustomerID:      a.CustomerID,
		ProviderID:      a.Slot.ProviderID,
		AppointmentType: string(a.AppointmentType),
		PatientNotes:    a.PatientNotes,
		Status:          string(a.Status),
		Start:           a.Slot.StartTime,
		End:             a.Slot.EndTime,
		FormattedTime:   a.Slot.StartTime.Format(domain.DisplayTimeFormat),
		FormattedDate:   a.Slot.StartTime.Format(domain.DisplayDateFormat),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(list []*domain.AppointmentWithSlot) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, *FromDomainAppointment(a))
	}

	return &AppointmentListResponse{
		Appointments: result,
		Count:        len(result),
	}
}
