package login

import (
	"errors"
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	staffService "github.com/dcastano/Barberia-BookingService/internal/service/staff"
	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCredentials = "неверный логин или пароль"
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

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Authenticate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidCredentials)

		default:
			h.logger.Error("POST /auth/login - Failed: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/login - Authenticated: staff_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
