package appointment_action

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Моки с функциональными полями

type mockAppointmentRepo struct {
	getByIDFn      func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error)
	updateStatusFn func(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
	return m.updateStatusFn(ctx, id, status)
}

type mockSlotRepo struct {
	releaseFn func(ctx context.Context, id int64) error
}

func (m *mockSlotRepo) Release(ctx context.Context, id int64) error {
	return m.releaseFn(ctx, id)
}

type mockIdentityClient struct {
	getUserFn func(ctx context.Context, userID int64) (*domain.User, error)
}

func (m *mockIdentityClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return m.getUserFn(ctx, userID)
}

type mockMailer struct {
	sendFn func(ctx context.Context, subject, body string, recipients []string) error
}

func (m *mockMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	return m.sendFn(ctx, subject, body, recipients)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func bothPartiesIdentity() *mockIdentityClient {
	return &mockIdentityClient{
		getUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Email: "user@example.com"}, nil
		},
	}
}

func silentMailer() *mockMailer {
	return &mockMailer{
		sendFn: func(ctx context.Context, subject, body string, recipients []string) error {
			return nil
		},
	}
}

func TestExecute_CancelReleasesSlot(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	var (
		newStatus domain.AppointmentStatus
		released  bool
		subject   string
	)

	apptRepo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			return appointmentIn(domain.StatusPending, now.Add(time.Hour)), nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
			newStatus = status
			return now, nil
		},
	}
	slotRepo := &mockSlotRepo{
		releaseFn: func(ctx context.Context, id int64) error {
			released = true
			return nil
		},
	}
	mail := &mockMailer{
		sendFn: func(ctx context.Context, s, body string, recipients []string) error {
			subject = s
			assert.Len(t, recipients, 2)
			return nil
		},
	}

	uc := NewUseCase(apptRepo, slotRepo, bothPartiesIdentity(), mail, fakeTxManager{}, fixedClock{now}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		ActorID:       customerID,
		Action:        domain.ActionCancel,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Equal(t, domain.StatusCancelled, newStatus)
	assert.True(t, released)
	assert.Equal(t, "Appointment Cancelled", subject)
}

func TestExecute_ApproveKeepsSlotBooked(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	apptRepo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			return appointmentIn(domain.StatusPending, now.Add(time.Hour)), nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
			return now, nil
		},
	}
	slotRepo := &mockSlotRepo{
		releaseFn: func(ctx context.Context, id int64) error {
			t.Fatal("approve must not release the slot")
			return nil
		},
	}

	uc := NewUseCase(apptRepo, slotRepo, bothPartiesIdentity(), silentMailer(), fakeTxManager{}, fixedClock{now}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		ActorID:       providerID,
		Action:        domain.ActionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, resp.Status)
}

func TestExecute_CompleteBeforeStartIsIllegal(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	apptRepo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			return appointmentIn(domain.StatusApproved, now.Add(time.Hour)), nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
			t.Fatal("status must not change on illegal transition")
			return time.Time{}, nil
		},
	}

	uc := NewUseCase(apptRepo, &mockSlotRepo{}, bothPartiesIdentity(), silentMailer(), fakeTxManager{}, fixedClock{now}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		ActorID:       providerID,
		Action:        domain.ActionComplete,
	})
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestExecute_CompleteAfterStartSucceeds(t *testing.T) {
	slotStart := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	apptRepo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			return appointmentIn(domain.StatusApproved, slotStart), nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
			return slotStart.Add(time.Hour), nil
		},
	}

	uc := NewUseCase(apptRepo, &mockSlotRepo{}, bothPartiesIdentity(), silentMailer(), fakeTxManager{},
		fixedClock{slotStart.Add(time.Hour)}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		ActorID:       providerID,
		Action:        domain.ActionComplete,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Status)
}

func TestExecute_ResponseCarriesPostUpdateTimestamp(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	advancedAt := now.Add(3 * time.Second)

	apptRepo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			appt := appointmentIn(domain.StatusPending, now.Add(time.Hour))
			appt.UpdatedAt = now.Add(-time.Hour)
			return appt, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
			return advancedAt, nil
		},
	}

	uc := NewUseCase(apptRepo, &mockSlotRepo{}, bothPartiesIdentity(), silentMailer(), fakeTxManager{}, fixedClock{now}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		ActorID:       providerID,
		Action:        domain.ActionApprove,
	})
	require.NoError(t, err)

	// updated_at двигает триггер БД: в ответе значение после перехода, а не прочитанное до него
	assert.Equal(t, advancedAt, resp.UpdatedAt)
}

func TestExecute_MailerFailureDoesNotFailTransition(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	apptRepo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			return appointmentIn(domain.StatusPending, now.Add(time.Hour)), nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error) {
			return now, nil
		},
	}
	mail := &mockMailer{
		sendFn: func(ctx context.Context, subject, body string, recipients []string) error {
			return assert.AnError
		},
	}

	uc := NewUseCase(apptRepo, &mockSlotRepo{}, bothPartiesIdentity(), mail, fakeTxManager{}, fixedClock{now}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 100,
		ActorID:       providerID,
		Action:        domain.ActionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, resp.Status)
}
