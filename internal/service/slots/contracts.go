package slots

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListFree(ctx context.Context, filter domain.FreeSlotsFilter) ([]*domain.Slot, error)
	Delete(ctx context.Context, id, providerID int64) error
}

// IdentityClient интерфейс клиента для IdentityService
type IdentityClient interface {
	GetProvider(ctx context.Context, providerID int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
