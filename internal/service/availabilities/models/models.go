package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AvailabilityResponse проекция окна доступности для API
type AvailabilityResponse struct {
	ID              int64     `json:"id"`
	ProviderID      int64     `json:"providerId"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	IntervalMinutes int       `json:"intervalMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AvailabilityListResponse список окон доступности провайдера
type AvailabilityListResponse struct {
	Availabilities []AvailabilityResponse `json:"availabilities"`
	Count          int                    `json:"count"`
}

// FromDomainWindow конвертирует domain.AvailabilityWindow в AvailabilityResponse
func FromDomainWindow(w *domain.AvailabilityWindow) AvailabilityResponse {
	return AvailabilityResponse{
		ID:              w.ID,
		ProviderID:      w.ProviderID,
		Date:            w.Date.Format(domain.DateFormat),
		StartTime:       w.StartTime.String(),
		EndTime:         w.EndTime.String(),
		IntervalMinutes: w.IntervalMinutes,
		CreatedAt:       w.CreatedAt,
	}
}

// FromDomainWindowList конвертирует список окон
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *AvailabilityListResponse {
	result := make([]AvailabilityResponse, 0, len(windows))
	for _, w := range windows {
		result = append(result, FromDomainWindow(w))
	}

	return &AvailabilityListResponse{
		Availabilities: result,
		Count:          len(result),
	}
}
