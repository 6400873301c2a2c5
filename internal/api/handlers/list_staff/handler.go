package list_staff

import (
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff?bookable=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	onlyBookable := r.URL.Query().Get("bookable") == "true"

	result, err := h.service.List(r.Context(), onlyBookable)
	if err != nil {
		h.logger.Error("GET /staff - Failed to list staff: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
