package delete_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
)

// UseCase use case удаления окна доступности вместе со свободными слотами
type UseCase struct {
	availabilityRepo AvailabilityRepository
	slotRepo         SlotRepository
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		slotRepo:         slotRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case удаления окна доступности
//
// Удаление запрещено, пока в дате окна есть хотя бы один занятый слот.
// Свободные слоты даты удаляются вместе с окном в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeleteAvailability: window=%d, provider=%d", req.WindowID, req.ProviderID)

	// 1. Валидация входных данных
	if req.WindowID <= 0 || req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: window id and provider id must be positive", ErrInvalidInput)
	}

	var deleted int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем окно с блокировкой (FOR UPDATE)
		window, err := uc.availabilityRepo.GetByID(txCtx, req.WindowID, req.ProviderID)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				uc.logger.Warn("DeleteAvailability: window id=%d not found for provider=%d",
					req.WindowID, req.ProviderID)
				return ErrWindowNotFound
			}
			uc.logger.Error("DeleteAvailability: failed to get window id=%d: %v", req.WindowID, err)
			return fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
		}

		// 3. Guard: занятые слоты в дате окна блокируют удаление
		dayStart, dayEnd := domain.DayBounds(window.Date)
		hasBooked, err := uc.slotRepo.ExistsBooked(txCtx, req.ProviderID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("DeleteAvailability: failed to check booked slots: %v", err)
			return fmt.Errorf("%w: failed to check booked slots: %v", ErrInternal, err)
		}
		if hasBooked {
			uc.logger.Warn("DeleteAvailability: window id=%d has booked slots", req.WindowID)
			return ErrHasBookedSlots
		}

		// 4. Удаляем свободные слоты даты окна
		deleted, err = uc.slotRepo.DeleteFreeInRange(txCtx, req.ProviderID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("DeleteAvailability: failed to delete free slots: %v", err)
			return fmt.Errorf("%w: failed to delete free slots: %v", ErrInternal, err)
		}

		// 5. Удаляем само окно
		if err := uc.availabilityRepo.Delete(txCtx, req.WindowID, req.ProviderID); err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				return ErrWindowNotFound
			}
			uc.logger.Error("DeleteAvailability: failed to delete window id=%d: %v", req.WindowID, err)
			return fmt.Errorf("%w: failed to delete window: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("DeleteAvailability: window id=%d deleted with %d free slots", req.WindowID, deleted)

	return &Response{DeletedSlots: deleted}, nil
}
