package appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentWithSlot, error)
}

// IdentityClient интерфейс клиента для IdentityService
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
