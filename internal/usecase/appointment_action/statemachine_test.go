package appointment_action

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	customerID = int64(2)
	providerID = int64(1)
	strangerID = int64(99)
)

func appointmentIn(status domain.AppointmentStatus, slotStart time.Time) *domain.AppointmentWithSlot {
	return &domain.AppointmentWithSlot{
		Appointment: domain.Appointment{
			ID:         100,
			SlotID:     10,
			CustomerID: customerID,
			Status:     status,
		},
		Slot: domain.Slot{
			ID:         10,
			ProviderID: providerID,
			StartTime:  slotStart,
			EndTime:    slotStart.Add(30 * time.Minute),
			IsBooked:   true,
		},
	}
}

func TestResolveTransition_AllowedRows(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		status      domain.AppointmentStatus
		action      domain.AppointmentAction
		actor       int64
		slotStart   time.Time
		wantTo      domain.AppointmentStatus
		wantRelease bool
	}{
		{"customer cancels pending", domain.StatusPending, domain.ActionCancel, customerID, future, domain.StatusCancelled, true},
		{"provider approves pending", domain.StatusPending, domain.ActionApprove, providerID, future, domain.StatusApproved, false},
		{"provider rejects pending", domain.StatusPending, domain.ActionReject, providerID, future, domain.StatusRejected, true},
		{"customer cancels approved", domain.StatusApproved, domain.ActionCancel, customerID, future, domain.StatusCancelled, true},
		{"provider completes started", domain.StatusApproved, domain.ActionComplete, providerID, past, domain.StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := resolveTransition(appointmentIn(tt.status, tt.slotStart), tt.actor, tt.action, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, tr.to)
			assert.Equal(t, tt.wantRelease, tr.releaseSlot)
			assert.NotEmpty(t, tr.subject)
		})
	}
}

// Полный перебор троек (статус, действие, актор): всё, чего нет в таблице,
// обязано вернуть ErrIllegalTransition
func TestResolveTransition_OutOfTableTriples(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	type triple struct {
		status domain.AppointmentStatus
		action domain.AppointmentAction
		actor  int64
	}

	allowed := map[triple]bool{
		{domain.StatusPending, domain.ActionCancel, customerID}:    true,
		{domain.StatusPending, domain.ActionApprove, providerID}:   true,
		{domain.StatusPending, domain.ActionReject, providerID}:    true,
		{domain.StatusApproved, domain.ActionCancel, customerID}:   true,
		{domain.StatusApproved, domain.ActionComplete, providerID}: true,
	}

	statuses := []domain.AppointmentStatus{
		domain.StatusPending, domain.StatusApproved, domain.StatusRejected,
		domain.StatusCancelled, domain.StatusCompleted,
	}
	actions := []domain.AppointmentAction{
		domain.ActionApprove, domain.ActionReject, domain.ActionCancel, domain.ActionComplete,
	}
	actors := []int64{customerID, providerID, strangerID}

	for _, status := range statuses {
		for _, action := range actions {
			for _, actor := range actors {
				if allowed[triple{status, action, actor}] {
					continue
				}

				// Слот в прошлом, чтобы guard времени не маскировал чужие тройки
				_, err := resolveTransition(appointmentIn(status, past), actor, action, now)
				assert.ErrorIs(t, err, ErrIllegalTransition,
					"status=%s action=%s actor=%d must be illegal", status, action, actor)
			}
		}
	}
}

func TestResolveTransition_CompleteRequiresStartedSlot(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	// Слот ещё не начался - завершить нельзя
	_, err := resolveTransition(appointmentIn(domain.StatusApproved, now.Add(time.Hour)), providerID, domain.ActionComplete, now)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// Время прошло - тот же вызов проходит
	tr, err := resolveTransition(appointmentIn(domain.StatusApproved, now.Add(time.Hour)), providerID, domain.ActionComplete, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, tr.to)
}
