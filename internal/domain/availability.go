package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AvailabilityWindow is a provider's declared working window on one calendar
// day. Creating or editing a window expands it into discrete slots of
// IntervalMinutes each; a trailing remainder shorter than the interval
// produces no slot.
type AvailabilityWindow struct {
	ID              int64
	ProviderID      int64
	Date            time.Time // date only, clock part is zero
	StartTime       types.TimeString
	EndTime         types.TimeString
	IntervalMinutes int
	CreatedAt       time.Time
}

// StartAt returns the window's opening instant on its date.
func (w *AvailabilityWindow) StartAt() (time.Time, error) {
	return w.StartTime.At(w.Date)
}

// EndAt returns the window's closing instant on its date.
func (w *AvailabilityWindow) EndAt() (time.Time, error) {
	return w.EndTime.At(w.Date)
}
