package delete_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
)

type mockAvailabilityRepo struct {
	getByIDFn func(ctx context.Context, id, providerID int64) (*domain.AvailabilityWindow, error)
	deleteFn  func(ctx context.Context, id, providerID int64) error
}

func (m *mockAvailabilityRepo) GetByID(ctx context.Context, id, providerID int64) (*domain.AvailabilityWindow, error) {
	return m.getByIDFn(ctx, id, providerID)
}

func (m *mockAvailabilityRepo) Delete(ctx context.Context, id, providerID int64) error {
	return m.deleteFn(ctx, id, providerID)
}

type mockSlotRepo struct {
	existsBookedFn      func(ctx context.Context, providerID int64, start, end time.Time) (bool, error)
	deleteFreeInRangeFn func(ctx context.Context, providerID int64, start, end time.Time) (int64, error)
}

func (m *mockSlotRepo) ExistsBooked(ctx context.Context, providerID int64, start, end time.Time) (bool, error) {
	return m.existsBookedFn(ctx, providerID, start, end)
}

func (m *mockSlotRepo) DeleteFreeInRange(ctx context.Context, providerID int64, start, end time.Time) (int64, error) {
	return m.deleteFreeInRangeFn(ctx, providerID, start, end)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func storedWindow() *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID:              7,
		ProviderID:      1,
		Date:            time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "12:00",
		IntervalMinutes: 30,
	}
}

func TestExecute_DeletesWindowWithFreeSlots(t *testing.T) {
	var windowDeleted bool

	availRepo := &mockAvailabilityRepo{
		getByIDFn: func(ctx context.Context, id, providerID int64) (*domain.AvailabilityWindow, error) {
			return storedWindow(), nil
		},
		deleteFn: func(ctx context.Context, id, providerID int64) error {
			windowDeleted = true
			return nil
		},
	}
	slotRepo := &mockSlotRepo{
		existsBookedFn: func(ctx context.Context, providerID int64, start, end time.Time) (bool, error) {
			return false, nil
		},
		deleteFreeInRangeFn: func(ctx context.Context, providerID int64, start, end time.Time) (int64, error) {
			return 6, nil
		},
	}

	uc := NewUseCase(availRepo, slotRepo, fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{WindowID: 7, ProviderID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(6), resp.DeletedSlots)
	assert.True(t, windowDeleted)
}

func TestExecute_RejectsWhenDateHasBookedSlots(t *testing.T) {
	availRepo := &mockAvailabilityRepo{
		getByIDFn: func(ctx context.Context, id, providerID int64) (*domain.AvailabilityWindow, error) {
			return storedWindow(), nil
		},
		deleteFn: func(ctx context.Context, id, providerID int64) error {
			t.Fatal("window must not be deleted when the date has bookings")
			return nil
		},
	}
	slotRepo := &mockSlotRepo{
		existsBookedFn: func(ctx context.Context, providerID int64, start, end time.Time) (bool, error) {
			return true, nil
		},
	}

	uc := NewUseCase(availRepo, slotRepo, fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{WindowID: 7, ProviderID: 1})
	assert.ErrorIs(t, err, ErrHasBookedSlots)
}

func TestExecute_OtherProvidersWindowIsNotFound(t *testing.T) {
	availRepo := &mockAvailabilityRepo{
		getByIDFn: func(ctx context.Context, id, providerID int64) (*domain.AvailabilityWindow, error) {
			return nil, availabilityRepo.ErrWindowNotFound
		},
	}

	uc := NewUseCase(availRepo, &mockSlotRepo{}, fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{WindowID: 7, ProviderID: 2})
	assert.ErrorIs(t, err, ErrWindowNotFound)
}
