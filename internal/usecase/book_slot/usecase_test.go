package book_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// Моки с функциональными полями

type mockSlotRepo struct {
	getByIDFn    func(ctx context.Context, id int64) (*domain.Slot, error)
	markBookedFn func(ctx context.Context, id int64) error
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockSlotRepo) MarkBooked(ctx context.Context, id int64) error {
	return m.markBookedFn(ctx, id)
}

type mockAppointmentRepo struct {
	createFn func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	return m.createFn(ctx, appt)
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

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func usersIdentity() *mockIdentityClient {
	return &mockIdentityClient{
		getUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			if userID == 1 {
				return &domain.User{ID: 1, Role: domain.RoleProvider, Email: "dr@example.com", DisplayName: "House"}, nil
			}
			return &domain.User{ID: userID, Role: domain.RoleCustomer, Email: "patient@example.com", DisplayName: "John Doe"}, nil
		},
	}
}

func freeSlot() *domain.Slot {
	return &domain.Slot{
		ID:         10,
		ProviderID: 1,
		StartTime:  time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC),
	}
}

func bookRequest() *Request {
	return &Request{
		SlotID:          10,
		CustomerID:      2,
		AppointmentType: domain.TypeConsultation,
		PatientNotes:    "first visit",
	}
}

func silentMailer() *mockMailer {
	return &mockMailer{
		sendFn: func(ctx context.Context, subject, body string, recipients []string) error {
			return nil
		},
	}
}

func TestExecute_BooksFreeSlot(t *testing.T) {
	var (
		createdAppt *domain.Appointment
		marked      bool
		subjects    []string
	)

	slotRepo := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Slot, error) {
			return freeSlot(), nil
		},
		markBookedFn: func(ctx context.Context, id int64) error {
			marked = true
			return nil
		},
	}
	apptRepo := &mockAppointmentRepo{
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			appt.ID = 100
			appt.CreatedAt = time.Now()
			createdAppt = appt
			return appt, nil
		},
	}
	mail := &mockMailer{
		sendFn: func(ctx context.Context, subject, body string, recipients []string) error {
			subjects = append(subjects, subject)
			return nil
		},
	}

	uc := NewUseCase(slotRepo, apptRepo, usersIdentity(), mail, fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), bookRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, int64(1), resp.ProviderID)
	assert.True(t, marked)

	require.NotNil(t, createdAppt)
	assert.Equal(t, domain.StatusPending, createdAppt.Status)
	assert.Equal(t, domain.TypeConsultation, createdAppt.AppointmentType)

	// Уведомления обеим сторонам
	assert.Equal(t, []string{"Appointment Request Submitted", "New Appointment Request"}, subjects)
}

func TestExecute_RejectsProviderBooking(t *testing.T) {
	uc := NewUseCase(nil, nil, usersIdentity(), silentMailer(), fakeTxManager{}, noopLogger{})

	req := bookRequest()
	req.CustomerID = 1 // провайдер

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrProviderCannotBook)
}

func TestExecute_RejectsBookedSlot(t *testing.T) {
	slotRepo := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Slot, error) {
			s := freeSlot()
			s.IsBooked = true
			return s, nil
		},
	}
	apptRepo := &mockAppointmentRepo{
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			t.Fatal("appointment must not be created for a booked slot")
			return nil, nil
		},
	}

	uc := NewUseCase(slotRepo, apptRepo, usersIdentity(), silentMailer(), fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), bookRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_MapsUniqueViolationToConflict(t *testing.T) {
	// Гонка: параллельная запись успела первой, индекс отбил вставку
	slotRepo := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Slot, error) {
			return freeSlot(), nil
		},
	}
	apptRepo := &mockAppointmentRepo{
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			return nil, appointmentRepo.ErrSlotTaken
		},
	}

	uc := NewUseCase(slotRepo, apptRepo, usersIdentity(), silentMailer(), fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), bookRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_MailerFailureDoesNotFailBooking(t *testing.T) {
	slotRepo := &mockSlotRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Slot, error) {
			return freeSlot(), nil
		},
		markBookedFn: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	apptRepo := &mockAppointmentRepo{
		createFn: func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
			appt.ID = 100
			return appt, nil
		},
	}
	mail := &mockMailer{
		sendFn: func(ctx context.Context, subject, body string, recipients []string) error {
			return assert.AnError
		},
	}

	uc := NewUseCase(slotRepo, apptRepo, usersIdentity(), mail, fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), bookRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
}

func TestExecute_RejectsUnknownType(t *testing.T) {
	uc := NewUseCase(nil, nil, usersIdentity(), silentMailer(), fakeTxManager{}, noopLogger{})

	req := bookRequest()
	req.AppointmentType = "house-call"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
