package global_shift

import (
	"errors"
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	scheduleService "github.com/dcastano/Barberia-BookingService/internal/service/schedule"
	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAction      = "действие должно быть add или remove"
	msgInvalidDayOrTime   = "некорректный день недели или формат времени"
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

// Handle POST /api/v1/schedule/shift
// Добавляет или убирает время из сетки всех записываемых мастеров
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.GlobalShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/shift - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ManageGlobalShift(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidShiftAction):
			h.logger.Warn("POST /schedule/shift - Invalid action: %s", req.Action)
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /schedule/shift - Invalid day or time: day=%s, time=%s", req.Day, req.Time)
			handlers.RespondBadRequest(w, msgInvalidDayOrTime)

		default:
			h.logger.Error("POST /schedule/shift - Failed: action=%s, day=%s, time=%s, error=%v", req.Action, req.Day, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/shift - Applied: action=%s, day=%s, time=%s, slots=%d", result.Action, result.Day, result.Time, result.SlotsAffected)
	handlers.RespondJSON(w, http.StatusOK, result)
}
