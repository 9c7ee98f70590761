package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type mockAppointmentRepo struct {
	getByIDFn        func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error)
	listWithFilterFn func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentWithSlot, error)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockAppointmentRepo) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentWithSlot, error) {
	return m.listWithFilterFn(ctx, filter)
}

type mockIdentityClient struct {
	getUserFn func(ctx context.Context, userID int64) (*domain.User, error)
}

func (m *mockIdentityClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return m.getUserFn(ctx, userID)
}

func providerIdentity() *mockIdentityClient {
	return &mockIdentityClient{
		getUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Role: domain.RoleProvider}, nil
		},
	}
}

func customerIdentity() *mockIdentityClient {
	return &mockIdentityClient{
		getUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Role: domain.RoleCustomer}, nil
		},
	}
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func storedAppointment() *domain.AppointmentWithSlot {
	return &domain.AppointmentWithSlot{
		Appointment: domain.Appointment{
			ID:         100,
			SlotID:     10,
			CustomerID: 2,
			Status:     domain.StatusPending,
		},
		Slot: domain.Slot{
			ID:         10,
			ProviderID: 1,
			StartTime:  time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC),
			IsBooked:   true,
		},
	}
}

func TestGetByID_PartiesCanSee(t *testing.T) {
	repo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			return storedAppointment(), nil
		},
	}
	svc := NewService(repo, providerIdentity(), noopLogger{})

	// Клиент записи
	resp, err := svc.GetByID(context.Background(), 100, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)

	// Провайдер слота
	resp, err = svc.GetByID(context.Background(), 100, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ProviderID)
}

func TestGetByID_StrangerGetsNotFound(t *testing.T) {
	repo := &mockAppointmentRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error) {
			return storedAppointment(), nil
		},
	}
	svc := NewService(repo, providerIdentity(), noopLogger{})

	// Чужая запись неотличима от несуществующей
	_, err := svc.GetByID(context.Background(), 100, 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_FiltersByRole(t *testing.T) {
	var captured domain.AppointmentsFilter

	repo := &mockAppointmentRepo{
		listWithFilterFn: func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentWithSlot, error) {
			captured = filter
			return []*domain.AppointmentWithSlot{storedAppointment()}, nil
		},
	}
	svc := NewService(repo, providerIdentity(), noopLogger{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{ActorID: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	require.NotNil(t, captured.CustomerID)
	assert.Equal(t, int64(2), *captured.CustomerID)
	assert.Nil(t, captured.ProviderID)

	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{ActorID: 1, AsProvider: true})
	require.NoError(t, err)
	require.NotNil(t, captured.ProviderID)
	assert.Equal(t, int64(1), *captured.ProviderID)
	assert.Nil(t, captured.CustomerID)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(&mockAppointmentRepo{}, providerIdentity(), noopLogger{})

	bogus := "scheduled"
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{ActorID: 2, Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_ProviderModeRequiresProviderRole(t *testing.T) {
	repo := &mockAppointmentRepo{
		listWithFilterFn: func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentWithSlot, error) {
			t.Fatal("repository must not be queried when provider mode is denied")
			return nil, nil
		},
	}
	svc := NewService(repo, customerIdentity(), noopLogger{})

	// Клиент не получает провайдерскую выборку
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{ActorID: 2, AsProvider: true})
	assert.ErrorIs(t, err, ErrNotProvider)

	// Клиентская выборка роли не требует
	repo.listWithFilterFn = func(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentWithSlot, error) {
		return nil, nil
	}
	_, err = svc.List(context.Background(), &models.ListAppointmentsRequest{ActorID: 2})
	require.NoError(t, err)
}
