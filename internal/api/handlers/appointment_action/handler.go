package appointment_action

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentAction "github.com/m04kA/SMC-AppointmentService/internal/usecase/appointment_action"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidAction        = "некорректное действие"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgIllegalTransition    = "переход недопустим для текущего статуса записи"
)

type Handler struct {
	useCase AppointmentActionUseCase
	logger  Logger
}

func NewHandler(useCase AppointmentActionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/{action} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	action := domain.AppointmentAction(vars["action"])
	if !domain.ValidAppointmentAction(action) {
		h.logger.Warn("POST /appointments/{id}/{action} - Invalid action: %q", vars["action"])
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/{action} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &appointmentAction.Request{
		AppointmentID: appointmentID,
		ActorID:       actorID,
		Action:        action,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointmentAction.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/{action} - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		case errors.Is(err, appointmentAction.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/{action} - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmentAction.ErrIllegalTransition):
			h.logger.Warn("POST /appointments/{id}/{action} - Illegal transition: appointment_id=%d, action=%s, actor_id=%d",
				appointmentID, action, actorID)
			handlers.RespondError(w, http.StatusConflict, msgIllegalTransition)

		default:
			h.logger.Error("POST /appointments/{id}/{action} - Failed to apply action: appointment_id=%d, action=%s, error=%v",
				appointmentID, action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/{action} - Transition applied: appointment_id=%d, action=%s, status=%s",
		appointmentID, action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
