package update_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
	identityClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/identityservice"
)

// UseCase use case изменения окна доступности с перегенерацией слотов
type UseCase struct {
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	identityClient   IdentityClient
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	identityClient IdentityClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		identityClient:   identityClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case изменения окна доступности
//
// Правка запрещена, пока в дате окна есть хотя бы один занятый слот.
// Свободные слоты старой даты удаляются, после чего слоты генерируются
// заново по новым параметрам. Всё - в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAvailability: window=%d, provider=%d, date=%s, window=%s-%s, interval=%d",
		req.WindowID, req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.IntervalMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что действующий пользователь - провайдер
	user, err := uc.identityClient.GetUser(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("UpdateAvailability: user id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("UpdateAvailability: failed to get user id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.IsProvider() {
		uc.logger.Warn("UpdateAvailability: user id=%d is not a provider", req.ProviderID)
		return nil, ErrNotProvider
	}

	var (
		window    *domain.AvailabilityWindow
		deleted   int64
		generated int
	)

	// 3. Перегенерация слотов в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем окно с блокировкой (FOR UPDATE)
		// Выборка ограничена владельцем: чужое окно = не найдено
		window, err = uc.availabilityRepo.GetByID(txCtx, req.WindowID, req.ProviderID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				uc.logger.Warn("UpdateAvailability: window id=%d not found for provider=%d",
					req.WindowID, req.ProviderID)
				return ErrWindowNotFound
			}
			uc.logger.Error("UpdateAvailability: failed to get window id=%d: %v", req.WindowID, err)
			return fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
		}

		// 3.2. Guard: занятые слоты в исходной дате окна блокируют правку
		oldDayStart, oldDayEnd := domain.DayBounds(window.Date)
		hasBooked, err := uc.slotRepo.ExistsBooked(txCtx, req.ProviderID, oldDayStart, oldDayEnd)
		if err != nil {
			uc.logger.Error("UpdateAvailability: failed to check booked slots: %v", err)
			return fmt.Errorf("%w: failed to check booked slots: %v", ErrInternal, err)
		}
		if hasBooked {
			uc.logger.Warn("UpdateAvailability: window id=%d has booked slots on %s",
				req.WindowID, window.Date.Format(domain.DateFormat))
			return ErrHasBookedSlots
		}

		// 3.3. Удаляем только свободные слоты исходной даты
		deleted, err = uc.slotRepo.DeleteFreeInRange(txCtx, req.ProviderID, oldDayStart, oldDayEnd)
		if err != nil {
			uc.logger.Error("UpdateAvailability: failed to delete free slots: %v", err)
			return fmt.Errorf("%w: failed to delete free slots: %v", ErrInternal, err)
		}

		// 3.4. Сохраняем новые параметры окна
		window.Date = req.Date
		window.StartTime = req.StartTime
		window.EndTime = req.EndTime
		window.IntervalMinutes = req.IntervalMinutes

		if err := uc.availabilityRepo.Update(txCtx, window); err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowAlreadyExists) {
				uc.logger.Warn("UpdateAvailability: duplicate window for provider=%d", req.ProviderID)
				return ErrWindowAlreadyExists
			}
			uc.logger.Error("UpdateAvailability: failed to update window id=%d: %v", req.WindowID, err)
			return fmt.Errorf("%w: failed to update window: %v", ErrInternal, err)
		}

		// 3.5. Генерируем слоты по новым параметрам
		generated, err = expandWindow(txCtx, uc.slotRepo, window)
		if err != nil {
			uc.logger.Error("UpdateAvailability: failed to expand window id=%d: %v", window.ID, err)
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAvailability: window id=%d updated: deleted %d free slots, generated %d",
		window.ID, deleted, generated)

	return &Response{
		ID:              window.ID,
		ProviderID:      window.ProviderID,
		Date:            window.Date,
		StartTime:       window.StartTime,
		EndTime:         window.EndTime,
		IntervalMinutes: window.IntervalMinutes,
		DeletedSlots:    deleted,
		GeneratedSlots:  generated,
	}, nil
}
