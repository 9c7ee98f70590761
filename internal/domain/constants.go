package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// Display formats used in slot projections and notification bodies
	DisplayTimeFormat = "03:04 PM"
	DisplayDateFormat = "January 02, 2006"
)

// Availability window constraints
const (
	DefaultIntervalMinutes = 30
	MaxPatientNotesLength  = 2000
)

// AllowedIntervals перечень допустимых шагов нарезки окна доступности (в минутах)
var AllowedIntervals = []int{10, 15, 20, 30, 45, 60}

// IsAllowedInterval reports whether the interval is one of the whitelisted
// slot durations.
func IsAllowedInterval(minutes int) bool {
	for _, allowed := range AllowedIntervals {
		if minutes == allowed {
			return true
		}
	}
	return false
}

// TerminalStatuses список финальных статусов записи
// Запись в финальном статусе никогда не удаляется - хранится как история
var TerminalStatuses = []AppointmentStatus{
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// ActiveStatuses список статусов, при которых запись удерживает слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
}
