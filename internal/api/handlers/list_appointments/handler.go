package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidMode   = "некорректный режим, ожидается customer или provider"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput  = "некорректные входные данные"
	msgNotProvider   = "режим provider доступен только провайдерам"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?mode=customer|provider&status=&from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	// Режим выборки: по умолчанию - записи клиента
	asProvider := false
	switch query.Get("mode") {
	case "", "customer":
	case "provider":
		asProvider = true
	default:
		h.logger.Warn("GET /appointments - Invalid mode: %q", query.Get("mode"))
		handlers.RespondBadRequest(w, msgInvalidMode)
		return
	}

	req := &models.ListAppointmentsRequest{
		ActorID:    actorID,
		AsProvider: asProvider,
	}

	if rawStatus := query.Get("status"); rawStatus != "" {
		req.Status = &rawStatus
	}

	// Опциональное окно времени начала слота: [from, to)
	if rawFrom := query.Get("from"); rawFrom != "" {
		from, err := time.Parse(domain.DateFormat, rawFrom)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid from date %q: %v", rawFrom, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.From = &from
	}
	if rawTo := query.Get("to"); rawTo != "" {
		to, err := time.Parse(domain.DateFormat, rawTo)
		if err != nil {
			h.logger.Warn("GET /appointments - Invalid to date %q: %v", rawTo, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.To = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid input: actor_id=%d, error=%v", actorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, appointments.ErrNotProvider):
			h.logger.Warn("GET /appointments - Provider mode denied: actor_id=%d", actorID)
			handlers.RespondForbidden(w, msgNotProvider)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments: actor_id=%d, error=%v",
				actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Listed %d appointments for actor_id=%d", result.Count, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
