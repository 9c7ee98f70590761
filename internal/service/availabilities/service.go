package availabilities

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/service/availabilities/models"
)

// Service сервис для чтения окон доступности
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса окон доступности
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// ListByProvider получает окна доступности провайдера
// Сортировка: по дате и началу окна по возрастанию
func (s *Service) ListByProvider(ctx context.Context, providerID int64) (*models.AvailabilityListResponse, error) {
	s.logger.Info("ListByProvider: fetching windows for provider=%d", providerID)

	if providerID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	windows, err := s.availabilityRepo.ListByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("ListByProvider: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListByProvider - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByProvider: fetched %d windows for provider=%d", len(windows), providerID)
	return models.FromDomainWindowList(windows), nil
}
