package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	updateAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_availability"
)

const (
	msgInvalidWindowID    = "некорректный ID окна доступности"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTimeRange   = "конец окна должен быть позже начала"
	msgInvalidInterval    = "недопустимый шаг нарезки слотов"
	msgProviderNotFound   = "провайдер не найден"
	msgNotProvider        = "доступно только провайдерам"
	msgWindowNotFound     = "окно доступности не найдено"
	msgHasBookedSlots     = "в дате окна есть забронированные слоты"
	msgWindowExists       = "окно с такими параметрами уже существует"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase UpdateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availabilities/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	windowID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /availabilities/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availabilities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /availabilities/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(windowID, providerID)
	if err != nil {
		h.logger.Warn("PUT /availabilities/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAvailability.ErrInvalidTimeRange):
			h.logger.Warn("PUT /availabilities/{id} - Invalid time range: window_id=%d", windowID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateAvailability.ErrInvalidInterval):
			h.logger.Warn("PUT /availabilities/{id} - Invalid interval: window_id=%d", windowID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, updateAvailability.ErrInvalidInput):
			h.logger.Warn("PUT /availabilities/{id} - Invalid input: window_id=%d, error=%v", windowID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateAvailability.ErrProviderNotFound):
			h.logger.Warn("PUT /availabilities/{id} - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, updateAvailability.ErrNotProvider):
			h.logger.Warn("PUT /availabilities/{id} - User is not a provider: user_id=%d", providerID)
			handlers.RespondForbidden(w, msgNotProvider)

		case errors.Is(err, updateAvailability.ErrWindowNotFound):
			h.logger.Warn("PUT /availabilities/{id} - Window not found: window_id=%d, provider_id=%d",
				windowID, providerID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, updateAvailability.ErrHasBookedSlots):
			h.logger.Warn("PUT /availabilities/{id} - Window has booked slots: window_id=%d", windowID)
			handlers.RespondError(w, http.StatusConflict, msgHasBookedSlots)

		case errors.Is(err, updateAvailability.ErrWindowAlreadyExists):
			h.logger.Warn("PUT /availabilities/{id} - Window already exists: provider_id=%d", providerID)
			handlers.RespondError(w, http.StatusConflict, msgWindowExists)

		default:
			h.logger.Error("PUT /availabilities/{id} - Failed to update window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availabilities/{id} - Window updated: window_id=%d, deleted=%d, generated=%d",
		result.ID, result.DeletedSlots, result.GeneratedSlots)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
