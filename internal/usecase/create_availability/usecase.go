package create_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
	identityClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/identityservice"
)

// UseCase use case создания окна доступности с генерацией слотов
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

// Execute выполняет use case создания окна доступности
// Окно и его слоты создаются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAvailability: provider=%d, date=%s, window=%s-%s, interval=%d",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.IntervalMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что действующий пользователь - провайдер
	user, err := uc.identityClient.GetUser(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("CreateAvailability: user id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateAvailability: failed to get user id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.IsProvider() {
		uc.logger.Warn("CreateAvailability: user id=%d is not a provider", req.ProviderID)
		return nil, ErrNotProvider
	}

	window := &domain.AvailabilityWindow{
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		IntervalMinutes: req.IntervalMinutes,
	}

	var generated int

	// 3. Проверка пересечений и генерация слотов в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Окно не должно пересекаться ни с одним существующим слотом
		// провайдера в эту дату, независимо от породившего слот окна.
		// Граничащие интервалы пересечением не считаются
		windowStart, err := window.StartAt()
		if err != nil {
			return fmt.Errorf("%w: combine window start: %v", ErrInternal, err)
		}
		windowEnd, err := window.EndAt()
		if err != nil {
			return fmt.Errorf("%w: combine window end: %v", ErrInternal, err)
		}

		overlapping, err := uc.slotRepo.CountOverlapping(txCtx, req.ProviderID, windowStart, windowEnd)
		if err != nil {
			uc.logger.Error("CreateAvailability: failed to count overlapping slots: %v", err)
			return fmt.Errorf("%w: failed to count overlapping slots: %v", ErrInternal, err)
		}
		if overlapping > 0 {
			uc.logger.Warn("CreateAvailability: window overlaps %d existing slots for provider=%d",
				overlapping, req.ProviderID)
			return ErrOverlapsExistingSlots
		}

		// 3.2. Сохраняем окно
		if _, err := uc.availabilityRepo.Create(txCtx, window); err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowAlreadyExists) {
				uc.logger.Warn("CreateAvailability: duplicate window for provider=%d", req.ProviderID)
				return ErrWindowAlreadyExists
			}
			uc.logger.Error("CreateAvailability: failed to create window: %v", err)
			return fmt.Errorf("%w: failed to create window: %v", ErrInternal, err)
		}

		// 3.3. Генерируем слоты
		generated, err = expandWindow(txCtx, uc.slotRepo, window)
		if err != nil {
			uc.logger.Error("CreateAvailability: failed to expand window id=%d: %v", window.ID, err)
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAvailability: created window id=%d with %d slots for provider=%d",
		window.ID, generated, req.ProviderID)

	return &Response{
		ID:              window.ID,
		ProviderID:      window.ProviderID,
		Date:            window.Date,
		StartTime:       window.StartTime,
		EndTime:         window.EndTime,
		IntervalMinutes: window.IntervalMinutes,
		GeneratedSlots:  generated,
		CreatedAt:       window.CreatedAt,
	}, nil
}
