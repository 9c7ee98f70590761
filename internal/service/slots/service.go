package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	identityClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

// Service сервис для работы со слотами
type Service struct {
	slotRepo       SlotRepository
	identityClient IdentityClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, identityClient IdentityClient, logger Logger) *Service {
	return &Service{
		slotRepo:       slotRepo,
		identityClient: identityClient,
		logger:         logger,
	}
}

// ListFree получает свободные слоты провайдера
// Опционально ограничивает выборку одной датой: полуинтервал [day, day+1)
func (s *Service) ListFree(ctx context.Context, req *models.ListFreeSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListFree: fetching free slots for provider=%d", req.ProviderID)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	provider, err := s.identityClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			s.logger.Warn("ListFree: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("ListFree: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ListFree - identity error: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.ListFree(ctx, domain.FreeSlotsFilter{
		ProviderID: req.ProviderID,
		Day:        req.Day,
	})
	if err != nil {
		s.logger.Error("ListFree: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ListFree - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListFree: fetched %d free slots for provider=%d", len(slots), req.ProviderID)
	return models.FromDomainSlotList(provider, slots), nil
}

// Delete удаляет свободный слот провайдера
// Занятый слот удалить нельзя
func (s *Service) Delete(ctx context.Context, slotID, providerID int64) error {
	s.logger.Info("Delete: deleting slot id=%d for provider=%d", slotID, providerID)

	if slotID <= 0 || providerID <= 0 {
		return fmt.Errorf("%w: slot id and provider id must be positive", ErrInvalidInput)
	}

	if err := s.slotRepo.Delete(ctx, slotID, providerID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotBooked):
			s.logger.Warn("Delete: slot id=%d is booked and cannot be deleted", slotID)
			return ErrSlotBooked
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Delete: slot id=%d not found for provider=%d", slotID, providerID)
			return ErrSlotNotFound
		default:
			s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: slot id=%d deleted", slotID)
	return nil
}
