package appointment_action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case перехода записи по жизненному циклу
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	identityClient  IdentityClient
	mailer          Mailer
	txManager       TransactionManager
	clock           TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	identityClient IdentityClient,
	mailer Mailer,
	txManager TransactionManager,
	clock TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		identityClient:  identityClient,
		mailer:          mailer,
		txManager:       txManager,
		clock:           clock,
		logger:          logger,
	}
}

// Execute выполняет use case перехода записи
//
// Переход и освобождение слота выполняются в одной сериализуемой
// транзакции. Уведомления уходят после коммита и не влияют на результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AppointmentAction: appointment=%d, actor=%d, action=%s",
		req.AppointmentID, req.ActorID, req.Action)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 || req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: appointment id and actor id must be positive", ErrInvalidInput)
	}
	if !domain.ValidAppointmentAction(req.Action) {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	var (
		appt      *domain.AppointmentWithSlot
		tr        *transition
		updatedAt time.Time
	)

	// 2. Переход в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		appt, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("AppointmentAction: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("AppointmentAction: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.1. Сверяем переход с таблицей
		tr, err = resolveTransition(appt, req.ActorID, req.Action, uc.clock.Now())
		if err != nil {
			uc.logger.Warn("AppointmentAction: illegal transition: appointment=%d, status=%s, action=%s, actor=%d",
				appt.ID, appt.Status, req.Action, req.ActorID)
			return err
		}

		// 2.2. Применяем переход
		updatedAt, err = uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, tr.to)
		if err != nil {
			uc.logger.Error("AppointmentAction: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		if tr.releaseSlot {
			if err := uc.slotRepo.Release(txCtx, appt.SlotID); err != nil {
				uc.logger.Error("AppointmentAction: failed to release slot id=%d: %v", appt.SlotID, err)
				return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AppointmentAction: appointment id=%d: %s -> %s", appt.ID, appt.Status, tr.to)

	// 3. Уведомления после коммита: ошибки только логируем
	uc.notify(ctx, appt, tr)

	return &Response{
		ID:              appt.ID,
		SlotID:          appt.SlotID,
		CustomerID:      appt.CustomerID,
		ProviderID:      appt.Slot.ProviderID,
		AppointmentType: appt.AppointmentType,
		Status:          tr.to,
		StartTime:       appt.Slot.StartTime,
		EndTime:         appt.Slot.EndTime,
		UpdatedAt:       updatedAt,
	}, nil
}

// notify отправляет письма клиенту и провайдеру слота о переходе
func (uc *UseCase) notify(ctx context.Context, appt *domain.AppointmentWithSlot, tr *transition) {
	when := fmt.Sprintf("%s at %s",
		appt.Slot.StartTime.Format(domain.DisplayDateFormat),
		appt.Slot.StartTime.Format(domain.DisplayTimeFormat))
	body := fmt.Sprintf("Your appointment for %s is now %s.", when, tr.to)

	recipients := make([]string, 0, 2)

	customer, err := uc.identityClient.GetUser(ctx, appt.CustomerID)
	if err != nil {
		uc.logger.Warn("AppointmentAction: failed to get customer id=%d for notification: %v",
			appt.CustomerID, err)
	} else {
		recipients = append(recipients, customer.Email)
	}

	provider, err := uc.identityClient.GetUser(ctx, appt.Slot.ProviderID)
	if err != nil {
		uc.logger.Warn("AppointmentAction: failed to get provider id=%d for notification: %v",
			appt.Slot.ProviderID, err)
	} else {
		recipients = append(recipients, provider.Email)
	}

	if err := uc.mailer.Send(ctx, tr.subject, body, recipients); err != nil {
		uc.logger.Warn("AppointmentAction: notification failed: %v", err)
	}
}
