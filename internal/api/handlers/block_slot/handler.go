package block_slot

import (
	"errors"
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	scheduleService "github.com/dcastano/Barberia-BookingService/internal/service/schedule"
	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotBooked         = "на слот уже есть запись клиента"
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

// HandleBlock POST /api/v1/schedule/block
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.BlockSlot(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrSlotBooked):
			h.logger.Warn("POST /schedule/block - Slot booked: staff_id=%d, day=%s, week=%d, time=%s", req.StaffID, req.Day, req.WeekOffset, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotBooked)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /schedule/block - Invalid slot reference: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /schedule/block - Failed to block slot: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/block - Slot blocked: staff_id=%d, day=%s, week=%d, time=%s", req.StaffID, req.Day, req.WeekOffset, req.Time)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleUnblock POST /api/v1/schedule/unblock
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/unblock - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UnblockSlot(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /schedule/unblock - Invalid slot reference: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /schedule/unblock - Failed to unblock slot: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/unblock - Slot unblocked: staff_id=%d, day=%s, week=%d, time=%s", req.StaffID, req.Day, req.WeekOffset, req.Time)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
