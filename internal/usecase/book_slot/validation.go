package book_slot

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность запроса на бронирование
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}

	if !domain.ValidAppointmentType(req.AppointmentType) {
		return fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, req.AppointmentType)
	}

	if len(req.PatientNotes) > domain.MaxPatientNotesLength {
		return fmt.Errorf("%w: patient notes exceed %d characters", ErrInvalidInput, domain.MaxPatientNotesLength)
	}

	return nil
}
