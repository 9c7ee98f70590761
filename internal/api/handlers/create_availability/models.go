package create_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	Date            string `json:"date"`      // "2026-09-15"
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "17:00"
	IntervalMinutes int    `json:"intervalMinutes"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID              int64  `json:"id"`
	ProviderID      int64  `json:"providerId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	IntervalMinutes int    `json:"intervalMinutes"`
	GeneratedSlots  int    `json:"generatedSlots"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAvailabilityRequest) ToUseCaseRequest(providerID int64) (*createAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createAvailability.Request{
		ProviderID:      providerID,
		Date:            date,
		StartTime:       startTime,
		EndTime:         endTime,
		IntervalMinutes: r.IntervalMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:              resp.ID,
		ProviderID:      resp.ProviderID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		IntervalMinutes: resp.IntervalMinutes,
		GeneratedSlots:  resp.GeneratedSlots,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
