package book_slot

import (
	"errors"
	"net/http"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	bookSlot "github.com/dcastano/Barberia-BookingService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotTaken          = "выбранный слот уже занят"
	msgSlotBlocked        = "выбранный слот закрыт для записи"
	msgSlotNotOffered     = "этого времени нет в сетке мастера"
	msgStaffNotFound      = "мастер не найден"
	msgStaffNotBookable   = "сотрудник не ведет запись"
	msgWeekOutsideHorizon = "неделя вне горизонта записи"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: staff_id=%d, day=%s, time=%s", req.StaffID, req.Day, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, bookSlot.ErrSlotBlocked):
			h.logger.Warn("POST /appointments - Slot blocked: staff_id=%d, day=%s, time=%s", req.StaffID, req.Day, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotBlocked)

		case errors.Is(err, bookSlot.ErrSlotNotOffered):
			h.logger.Warn("POST /appointments - Slot not offered: staff_id=%d, day=%s, time=%s", req.StaffID, req.Day, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotOffered)

		case errors.Is(err, bookSlot.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, bookSlot.ErrStaffNotBookable):
			h.logger.Warn("POST /appointments - Staff not bookable: staff_id=%d", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffNotBookable)

		case errors.Is(err, bookSlot.ErrInvalidWeekOffset):
			h.logger.Warn("POST /appointments - Week offset outside horizon: staff_id=%d, week=%d", req.StaffID, req.WeekOffset)
			handlers.RespondBadRequest(w, msgWeekOutsideHorizon)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to book slot: staff_id=%d, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, staff_id=%d, date=%s, time=%s",
		result.ID, result.StaffID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
