package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	deleteAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/delete_availability"
)

const (
	msgInvalidWindowID = "некорректный ID окна доступности"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgWindowNotFound  = "окно доступности не найдено"
	msgHasBookedSlots  = "в дате окна есть забронированные слоты"
)

type Handler struct {
	useCase DeleteAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeleteAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availabilities/{availabilityId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	windowID, err := strconv.ParseInt(vars["availabilityId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availabilities/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	providerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availabilities/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	_, err = h.useCase.Execute(r.Context(), &deleteAvailability.Request{
		WindowID:   windowID,
		ProviderID: providerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, deleteAvailability.ErrInvalidInput):
			h.logger.Warn("DELETE /availabilities/{id} - Invalid input: window_id=%d, error=%v", windowID, err)
			handlers.RespondBadRequest(w, msgInvalidWindowID)

		case errors.Is(err, deleteAvailability.ErrWindowNotFound):
			h.logger.Warn("DELETE /availabilities/{id} - Window not found: window_id=%d, provider_id=%d",
				windowID, providerID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, deleteAvailability.ErrHasBookedSlots):
			h.logger.Warn("DELETE /availabilities/{id} - Window has booked slots: window_id=%d", windowID)
			handlers.RespondError(w, http.StatusConflict, msgHasBookedSlots)

		default:
			h.logger.Error("DELETE /availabilities/{id} - Failed to delete window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availabilities/{id} - Window deleted: window_id=%d, provider_id=%d",
		windowID, providerID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
