package appointments

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	identityClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/identityservice"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	identityClient  IdentityClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, identityClient IdentityClient, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		identityClient:  identityClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят только её стороны: клиент записи и провайдер слота.
// Для остальных запись неотличима от несуществующей
func (s *Service) GetByID(ctx context.Context, id, actorID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%d", id, actorID)

	if id <= 0 || actorID <= 0 {
		return nil, fmt.Errorf("%w: appointment id and actor id must be positive", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.CustomerID != actorID && appt.Slot.ProviderID != actorID {
		s.logger.Warn("GetByID: actor=%d is not a party of appointment id=%d", actorID, id)
		return nil, ErrAppointmentNotFound
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает записи действующего пользователя
// Клиент видит свои записи, провайдер - записи на свои слоты.
// Провайдерская выборка доступна только пользователям с ролью провайдера.
// Опционально фильтрует по статусу и окну времени начала слота
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for actor=%d, asProvider=%v", req.ActorID, req.AsProvider)

	if req.ActorID <= 0 {
		return nil, fmt.Errorf("%w: actor id must be positive", ErrInvalidInput)
	}

	if req.AsProvider {
		actor, err := s.identityClient.GetUser(ctx, req.ActorID)
		if err != nil {
			if errors.Is(err, identityClient.ErrUserNotFound) {
				s.logger.Warn("List: actor=%d not found, provider mode denied", req.ActorID)
				return nil, ErrNotProvider
			}
			s.logger.Error("List: failed to get actor=%d: %v", req.ActorID, err)
			return nil, fmt.Errorf("%w: List - identity error: %v", ErrInternal, err)
		}
		if !actor.IsProvider() {
			s.logger.Warn("List: actor=%d is not a provider, provider mode denied", req.ActorID)
			return nil, ErrNotProvider
		}
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for actor=%d: %v", req.ActorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for actor=%d: %v", req.ActorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments for actor=%d", len(list), req.ActorID)
	return models.FromDomainAppointmentList(list), nil
}
