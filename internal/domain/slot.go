package domain

import "time"

// Slot represents one atomic bookable unit of a provider's time.
// Slots never overlap for a provider: (provider_id, start_time) is unique and
// each slot is produced by cutting an availability window into fixed steps.
type Slot struct {
	ID         int64
	ProviderID int64
	StartTime  time.Time
	EndTime    time.Time
	IsBooked   bool
}

// DurationMinutes returns the slot length in whole minutes.
func (s *Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

// IsFree returns true if the slot can still be booked.
func (s *Slot) IsFree() bool {
	return !s.IsBooked
}

// HasStarted reports whether the slot's start time has already passed.
func (s *Slot) HasStarted(now time.Time) bool {
	return s.StartTime.Before(now)
}

// FreeSlotsFilter фильтр для выборки свободных слотов провайдера
type FreeSlotsFilter struct {
	ProviderID int64
	Day        *time.Time // если задан - только слоты в пределах суток [day, day+1)
}

// DayBounds returns the half-open interval [day, day+1) holding every
// instant of the given timestamp's calendar day, in its location.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
