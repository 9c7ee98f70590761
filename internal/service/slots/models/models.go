package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// ListFreeSlotsRequest запрос на получение свободных слотов провайдера
type ListFreeSlotsRequest struct {
	ProviderID int64      `json:"providerId"`
	Day        *time.Time `json:"day,omitempty"` // Фильтр по дате (опционально)
}

// Response модели

// ProviderInfo сведения о провайдере для витрины слотов
type ProviderInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// SlotResponse проекция слота для API
type SlotResponse struct {
	ID              int64     `json:"id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	FormattedTime   string    `json:"formattedTime"`
	FormattedDate   string    `json:"formattedDate"`
}

// SlotListResponse список свободных слотов провайдера
type SlotListResponse struct {
	Provider ProviderInfo   `json:"provider"`
	Slots    []SlotResponse `json:"slots"`
	Count    int            `json:"count"`
}

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		Start:           s.StartTime,
		End:             s.EndTime,
		DurationMinutes: s.DurationMinutes(),
		FormattedTime:   s.StartTime.Format(domain.DisplayTimeFormat),
		FormattedDate:   s.StartTime.Format(domain.DisplayDateFormat),
	}
}

// FromDomainSlotList конвертирует список слотов с данными провайдера
func FromDomainSlotList(provider *domain.User, slots []*domain.Slot) *SlotListResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromDomainSlot(s))
	}

	return &SlotListResponse{
		Provider: ProviderInfo{
			ID:        provider.ID,
			Name:      fmt.Sprintf("Dr. %s", provider.DisplayName),
			Specialty: provider.DisplaySpecialty(),
		},
		Slots: result,
		Count: len(result),
	}
}
