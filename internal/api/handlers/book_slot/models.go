package book_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	AppointmentType string `json:"appointmentType"` // consultation | followup | checkup | emergency | specialist
	PatientNotes    string `json:"patientNotes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	SlotID          int64  `json:"slotId"`
	CustomerID      int64  `json:"customerId"`
	ProviderID      int64  `json:"providerId"`
	AppointmentType string `json:"appointmentType"`
	PatientNotes    string `json:"patientNotes,omitempty"`
	Status          string `json:"status"`
	Start           string `json:"start"`
	End             string `json:"end"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest(slotID, customerID int64) *bookSlot.Request {
	return &bookSlot.Request{
		SlotID:          slotID,
		CustomerID:      customerID,
		AppointmentType: domain.AppointmentType(r.AppointmentType),
		PatientNotes:    r.PatientNotes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		SlotID:          resp.SlotID,
		CustomerID:      resp.CustomerID,
		ProviderID:      resp.ProviderID,
		AppointmentType: string(resp.AppointmentType),
		PatientNotes:    resp.PatientNotes,
		Status:          string(resp.Status),
		Start:           resp.StartTime.Format(time.RFC3339),
		End:             resp.EndTime.Format(time.RFC3339),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
