package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	identityClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/identityservice"
)

// UseCase use case бронирования слота клиентом
type UseCase struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	identityClient  IdentityClient
	mailer          Mailer
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	identityClient IdentityClient,
	mailer Mailer,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		identityClient:  identityClient,
		mailer:          mailer,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case бронирования слота
//
// Запись создается в статусе pending, слот помечается занятым в той же
// сериализуемой транзакции. Уведомления уходят после коммита: их ошибки
// не откатывают бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: slot=%d, customer=%d, type=%s", req.SlotID, req.CustomerID, req.AppointmentType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем клиента: провайдеры не бронируют слоты
	customer, err := uc.identityClient.GetUser(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("BookSlot: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("BookSlot: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}
	if customer.IsProvider() {
		uc.logger.Warn("BookSlot: user id=%d is a provider and cannot book", req.CustomerID)
		return nil, ErrProviderCannotBook
	}

	var (
		slot *domain.Slot
		appt *domain.Appointment
	)

	// 3. Бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем слот с блокировкой (FOR UPDATE)
		slot, err = uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("BookSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("BookSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if slot.IsBooked {
			uc.logger.Warn("BookSlot: slot id=%d is already booked", req.SlotID)
			return ErrSlotAlreadyBooked
		}

		// 3.2. Создаем запись в статусе pending
		// Частичный уникальный индекс по активным записям страхует от гонки
		appt, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			SlotID:          req.SlotID,
			CustomerID:      req.CustomerID,
			AppointmentType: req.AppointmentType,
			PatientNotes:    req.PatientNotes,
			Status:          domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("BookSlot: slot id=%d already has an active appointment", req.SlotID)
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("BookSlot: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 3.3. Помечаем слот занятым
		if err := uc.slotRepo.MarkBooked(txCtx, req.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotAlreadyBooked) {
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("BookSlot: failed to mark slot id=%d booked: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to mark slot booked: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSlot: appointment id=%d created for slot=%d", appt.ID, slot.ID)

	// 4. Уведомления после коммита: ошибки только логируем
	uc.notify(ctx, customer, slot, appt)

	return &Response{
		ID:              appt.ID,
		SlotID:          slot.ID,
		CustomerID:      appt.CustomerID,
		ProviderID:      slot.ProviderID,
		AppointmentType: appt.AppointmentType,
		PatientNotes:    appt.PatientNotes,
		Status:          appt.Status,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		CreatedAt:       appt.CreatedAt,
	}, nil
}

// notify отправляет письма клиенту и провайдеру о новой заявке
func (uc *UseCase) notify(ctx context.Context, customer *domain.User, slot *domain.Slot, appt *domain.Appointment) {
	when := fmt.Sprintf("%s at %s",
		slot.StartTime.Format(domain.DisplayDateFormat),
		slot.StartTime.Format(domain.DisplayTimeFormat))

	customerBody := fmt.Sprintf(
		"Your appointment request for %s has been submitted and is awaiting approval.", when)
	if err := uc.mailer.Send(ctx, "Appointment Request Submitted", customerBody, []string{customer.Email}); err != nil {
		uc.logger.Warn("BookSlot: customer notification failed: %v", err)
	}

	provider, err := uc.identityClient.GetUser(ctx, slot.ProviderID)
	if err != nil {
		uc.logger.Warn("BookSlot: provider notification skipped, failed to get provider id=%d: %v",
			slot.ProviderID, err)
		return
	}

	providerBody := fmt.Sprintf(
		"%s requested a %s appointment for %s.", customer.DisplayName, appt.AppointmentType, when)
	if err := uc.mailer.Send(ctx, "New Appointment Request", providerBody, []string{provider.Email}); err != nil {
		uc.logger.Warn("BookSlot: provider notification failed: %v", err)
	}
}
