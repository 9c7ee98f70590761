package delete_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id, providerID int64) (*domain.AvailabilityWindow, error)
	Delete(ctx context.Context, id, providerID int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ExistsBooked(ctx context.Context, providerID int64, start, end time.Time) (bool, error)
	DeleteFreeInRange(ctx context.Context, providerID int64, start, end time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
