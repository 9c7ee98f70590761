package appointment_action

import (
	"time"

	appointmentAction "github.com/m04kA/SMC-AppointmentService/internal/usecase/appointment_action"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	SlotID          int64  `json:"slotId"`
	CustomerID      int64  `json:"customerId"`
	ProviderID      int64  `json:"providerId"`
	AppointmentType string `json:"appointmentType"`
	Status          string `json:"status"`
	Start           string `json:"start"`
	End             string `json:"end"`
	UpdatedAt       string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *appointmentAction.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		SlotID:          resp.SlotID,
		CustomerID:      resp.CustomerID,
		ProviderID:      resp.ProviderID,
		AppointmentType: string(resp.AppointmentType),
		Status:          string(resp.Status),
		Start:           resp.StartTime.Format(time.RFC3339),
		End:             resp.EndTime.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
