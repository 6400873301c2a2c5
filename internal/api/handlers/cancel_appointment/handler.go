package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	scheduleService "github.com/dcastano/Barberia-BookingService/internal/service/schedule"
	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректная ссылка на слот"
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

// Handle POST /api/v1/appointments/cancel
// Отмена идемпотентна: повторный запрос на уже свободный слот успешен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.CancelAppointment(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /appointments/cancel - Invalid slot reference: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /appointments/cancel - Failed to cancel: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/cancel - Appointment cancelled: staff_id=%d, day=%s, week=%d, time=%s", req.StaffID, req.Day, req.WeekOffset, req.Time)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
