package get_week_earnings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	earningsService "github.com/dcastano/Barberia-BookingService/internal/service/earnings"
)

const (
	msgInvalidStaffID = "некорректный идентификатор мастера"
	msgStaffNotFound  = "мастер не найден"
)

type Handler struct {
	service EarningsService
	logger  Logger
}

func NewHandler(service EarningsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/earnings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/earnings - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.WeekSummary(r.Context(), staffID)
	if err != nil {
		switch {
		case errors.Is(err, earningsService.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{staffId}/earnings - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("GET /staff/{staffId}/earnings - Failed: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
