package appointment_action

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentWithSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) (time.Time, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Release(ctx context.Context, id int64) error
}

// IdentityClient интерфейс клиента для IdentityService
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Mailer интерфейс почтовых уведомлений
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
// Вынесен в интерфейс ради guard-а "слот уже начался" в тестах
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider системные часы
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
