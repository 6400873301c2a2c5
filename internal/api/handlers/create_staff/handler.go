package create_staff

import (
	"errors"
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	staffService "github.com/dcastano/Barberia-BookingService/internal/service/staff"
	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUsernameTaken      = "логин уже занят"
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

// Handle POST /api/v1/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrUsernameTaken):
			h.logger.Warn("POST /staff - Username taken: username=%s", req.Username)
			handlers.RespondError(w, http.StatusConflict, msgUsernameTaken)

		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("POST /staff - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /staff - Failed to create staff: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff - Staff created: staff_id=%d, username=%s", result.ID, result.Username)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
