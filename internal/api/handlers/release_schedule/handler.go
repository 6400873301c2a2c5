package release_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

const msgInvalidStaffID = "некорректный идентификатор мастера"

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

// Handle POST /api/v1/staff/{staffId}/release
// Удаляет все незакреплённые записи мастера и открывает их слоты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /staff/{staffId}/release - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.ReleaseNonFixed(r.Context(), &models.ReleaseRequest{StaffID: staffID})
	if err != nil {
		h.logger.Error("POST /staff/{staffId}/release - Failed: staff_id=%d, error=%v", staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /staff/{staffId}/release - Released %d appointments: staff_id=%d", result.Released, staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
