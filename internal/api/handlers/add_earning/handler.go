package add_earning

import (
	"errors"
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	earningsService "github.com/dcastano/Barberia-BookingService/internal/service/earnings"
	"github.com/dcastano/Barberia-BookingService/internal/service/earnings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStaffNotFound      = "мастер не найден"
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

// Handle POST /api/v1/earnings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /earnings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddEntry(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, earningsService.ErrStaffNotFound):
			h.logger.Warn("POST /earnings - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, earningsService.ErrInvalidInput):
			h.logger.Warn("POST /earnings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /earnings - Failed: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /earnings - Entry added: entry_id=%d, staff_id=%d, amount=%.2f", result.ID, result.StaffID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
