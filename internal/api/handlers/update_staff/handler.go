package update_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	staffService "github.com/dcastano/Barberia-BookingService/internal/service/staff"
	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStaffID     = "некорректный идентификатор мастера"
	msgStaffNotFound      = "мастер не найден"
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

// HandleUpdate PUT /api/v1/staff/{staffId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /staff/{staffId} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var req models.UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{staffId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ID = staffID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("PUT /staff/{staffId} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, staffService.ErrUsernameTaken):
			h.logger.Warn("PUT /staff/{staffId} - Username taken: username=%s", req.Username)
			handlers.RespondError(w, http.StatusConflict, msgUsernameTaken)

		case errors.Is(err, staffService.ErrInvalidInput):
			h.logger.Warn("PUT /staff/{staffId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /staff/{staffId} - Failed to update: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{staffId} - Staff updated: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/staff/{staffId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /staff/{staffId} - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	if err := h.service.Delete(r.Context(), staffID); err != nil {
		switch {
		case errors.Is(err, staffService.ErrStaffNotFound):
			h.logger.Warn("DELETE /staff/{staffId} - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("DELETE /staff/{staffId} - Failed to delete: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff/{staffId} - Staff deleted: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
