package create_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTimeRange   = "конец окна должен быть позже начала"
	msgInvalidInterval    = "недопустимый шаг нарезки слотов"
	msgProviderNotFound   = "провайдер не найден"
	msgNotProvider        = "доступно только провайдерам"
	msgOverlapsSlots      = "окно пересекается с уже существующими слотами"
	msgWindowExists       = "окно с такими параметрами уже существует"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CreateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availabilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем providerID из контекста (через middleware Auth)
	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /availabilities - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(providerID)
	if err != nil {
		h.logger.Warn("POST /availabilities - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAvailability.ErrInvalidTimeRange):
			h.logger.Warn("POST /availabilities - Invalid time range: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createAvailability.ErrInvalidInterval):
			h.logger.Warn("POST /availabilities - Invalid interval: provider_id=%d, interval=%d",
				providerID, req.IntervalMinutes)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createAvailability.ErrInvalidInput):
			h.logger.Warn("POST /availabilities - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAvailability.ErrProviderNotFound):
			h.logger.Warn("POST /availabilities - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createAvailability.ErrNotProvider):
			h.logger.Warn("POST /availabilities - User is not a provider: user_id=%d", providerID)
			handlers.RespondForbidden(w, msgNotProvider)

		case errors.Is(err, createAvailability.ErrOverlapsExistingSlots):
			h.logger.Warn("POST /availabilities - Overlaps existing slots: provider_id=%d", providerID)
			handlers.RespondError(w, http.StatusConflict, msgOverlapsSlots)

		case errors.Is(err, createAvailability.ErrWindowAlreadyExists):
			h.logger.Warn("POST /availabilities - Window already exists: provider_id=%d", providerID)
			handlers.RespondError(w, http.StatusConflict, msgWindowExists)

		default:
			h.logger.Error("POST /availabilities - Failed to create window: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availabilities - Window created: window_id=%d, provider_id=%d, slots=%d",
		result.ID, providerID, result.GeneratedSlots)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
