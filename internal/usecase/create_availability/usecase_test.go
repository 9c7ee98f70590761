package create_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Моки с функциональными полями

type mockAvailabilityRepo struct {
	createFn func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
}

func (m *mockAvailabilityRepo) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	return m.createFn(ctx, w)
}

type mockSlotRepo struct {
	upsertFn           func(ctx context.Context, s *domain.Slot) (bool, error)
	countOverlappingFn func(ctx context.Context, providerID int64, start, end time.Time) (int, error)
}

func (m *mockSlotRepo) Upsert(ctx context.Context, s *domain.Slot) (bool, error) {
	return m.upsertFn(ctx, s)
}

func (m *mockSlotRepo) CountOverlapping(ctx context.Context, providerID int64, start, end time.Time) (int, error) {
	return m.countOverlappingFn(ctx, providerID, start, end)
}

type mockIdentityClient struct {
	getUserFn func(ctx context.Context, userID int64) (*domain.User, error)
}

func (m *mockIdentityClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return m.getUserFn(ctx, userID)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func providerIdentity() *mockIdentityClient {
	return &mockIdentityClient{
		getUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Role: domain.RoleProvider, Email: "dr@example.com"}, nil
		},
	}
}

func validRequest() *Request {
	return &Request{
		ProviderID:      1,
		Date:            time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "10:00",
		IntervalMinutes: 30,
	}
}

func TestExecute_GeneratesSlots(t *testing.T) {
	var created []*domain.Slot

	availRepo := &mockAvailabilityRepo{
		createFn: func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
			w.ID = 42
			return w, nil
		},
	}
	slotRepo := &mockSlotRepo{
		upsertFn: func(ctx context.Context, s *domain.Slot) (bool, error) {
			created = append(created, s)
			return true, nil
		},
		countOverlappingFn: func(ctx context.Context, providerID int64, start, end time.Time) (int, error) {
			return 0, nil
		},
	}

	uc := NewUseCase(availRepo, slotRepo, providerIdentity(), fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Окно 09:00-10:00 с шагом 30 даёт ровно 2 слота
	assert.Equal(t, 2, resp.GeneratedSlots)
	require.Len(t, created, 2)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC), created[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), created[0].EndTime)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), created[1].StartTime)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), created[1].EndTime)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_DropsTrailingRemainder(t *testing.T) {
	var created []*domain.Slot

	availRepo := &mockAvailabilityRepo{
		createFn: func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
			return w, nil
		},
	}
	slotRepo := &mockSlotRepo{
		upsertFn: func(ctx context.Context, s *domain.Slot) (bool, error) {
			created = append(created, s)
			return true, nil
		},
		countOverlappingFn: func(ctx context.Context, providerID int64, start, end time.Time) (int, error) {
			return 0, nil
		},
	}

	uc := NewUseCase(availRepo, slotRepo, providerIdentity(), fakeTxManager{}, noopLogger{})

	req := validRequest()
	req.EndTime = "09:50"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Хвостовые 20 минут не дают укороченного слота
	assert.Equal(t, 1, resp.GeneratedSlots)
	require.Len(t, created, 1)
	assert.Equal(t, time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC), created[0].EndTime)
}

func TestExecute_CountsExistingSlots(t *testing.T) {
	availRepo := &mockAvailabilityRepo{
		createFn: func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
			return w, nil
		},
	}
	// Повторная генерация: все слоты уже существуют, upsert ничего не создаёт
	slotRepo := &mockSlotRepo{
		upsertFn: func(ctx context.Context, s *domain.Slot) (bool, error) {
			return false, nil
		},
		countOverlappingFn: func(ctx context.Context, providerID int64, start, end time.Time) (int, error) {
			return 0, nil
		},
	}

	uc := NewUseCase(availRepo, slotRepo, providerIdentity(), fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Счётчик генерации учитывает и уже существовавшие слоты
	assert.Equal(t, 2, resp.GeneratedSlots)
}

func TestExecute_RejectsInvalidTimeRange(t *testing.T) {
	uc := NewUseCase(nil, nil, providerIdentity(), fakeTxManager{}, noopLogger{})

	req := validRequest()
	req.StartTime = "10:00"
	req.EndTime = "09:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	req.EndTime = "10:00"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_RejectsUnlistedInterval(t *testing.T) {
	uc := NewUseCase(nil, nil, providerIdentity(), fakeTxManager{}, noopLogger{})

	req := validRequest()
	req.IntervalMinutes = 25

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_RejectsOverlappingWindow(t *testing.T) {
	availRepo := &mockAvailabilityRepo{
		createFn: func(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
			t.Fatal("window must not be created when overlap is detected")
			return nil, nil
		},
	}
	slotRepo := &mockSlotRepo{
		countOverlappingFn: func(ctx context.Context, providerID int64, start, end time.Time) (int, error) {
			return 3, nil
		},
	}

	uc := NewUseCase(availRepo, slotRepo, providerIdentity(), fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOverlapsExistingSlots)
}

func TestExecute_RejectsNonProvider(t *testing.T) {
	identity := &mockIdentityClient{
		getUserFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Role: domain.RoleCustomer}, nil
		},
	}

	uc := NewUseCase(nil, nil, identity, fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotProvider)
}
