package toggle_fixed

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	scheduleService "github.com/dcastano/Barberia-BookingService/internal/service/schedule"
)

const (
	msgInvalidAppointmentID = "некорректный идентификатор записи"
	msgAppointmentNotFound  = "запись не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/fixed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{appointmentId}/fixed - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.ToggleFixed(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{appointmentId}/fixed - Not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		default:
			h.logger.Error("PATCH /appointments/{appointmentId}/fixed - Failed: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{appointmentId}/fixed - Toggled: appointment_id=%d, fixed=%t", appointmentID, result.Fixed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
