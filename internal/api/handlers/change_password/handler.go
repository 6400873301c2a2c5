package change_password

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	"github.com/dcastano/Barberia-BookingService/internal/api/middleware"
	staffService "github.com/dcastano/Barberia-BookingService/internal/service/staff"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStaffID     = "некорректный идентификатор мастера"
	msgStaffNotFound      = "мастер не найден"
	msgForeignPassword    = "пароль можно менять только свой"
)

// ChangePasswordRequest тело запроса на смену пароля
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

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

// Handle PATCH /api/v1/staff/{staffId}/password
// Мастер меняет только собственный пароль
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /staff/{staffId}/password - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	callerID, ok := middleware.StaffIDFromContext(r.Context())
	if !ok || callerID != staffID {
		h.logger.Warn("PATCH /staff/{staffId}/password - Foreign password change attempt: caller=%d target=%d", callerID, staffID)
		handlers.RespondForbidden(w, msgForeignPassword)
		return
	}

	var req ChangePasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/{staffId}/password - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), staffID, req.Password); err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("PATCH /staff/{staffId}/password - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("PATCH /staff/{staffId}/password - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /staff/{staffId}/password - Failed to update: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff/{staffId}/password - Password updated: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
