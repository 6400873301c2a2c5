package get_week_view

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcastano/Barberia-BookingService/internal/api/handlers"
	getWeekView "github.com/dcastano/Barberia-BookingService/internal/usecase/get_week_view"
)

const (
	msgInvalidStaffID    = "некорректный идентификатор мастера"
	msgInvalidWeekOffset = "неделя вне горизонта записи"
	msgStaffNotFound     = "мастер не найден"
	msgStaffNotBookable  = "сотрудник не ведет запись"
)

type Handler struct {
	useCase GetWeekViewUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekViewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/schedule?week=0
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(mux.Vars(r)["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{staffId}/schedule - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	// Смещение недели по умолчанию 0 (текущая)
	weekOffset := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		weekOffset, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /staff/{staffId}/schedule - Invalid week offset: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWeekOffset)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekView.Request{
		StaffID:    staffID,
		WeekOffset: weekOffset,
	})
	if err != nil {
		switch {
		case errors.Is(err, getWeekView.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{staffId}/schedule - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getWeekView.ErrStaffNotBookable):
			h.logger.Warn("GET /staff/{staffId}/schedule - Staff not bookable: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgStaffNotBookable)

		case errors.Is(err, getWeekView.ErrInvalidWeekOffset):
			h.logger.Warn("GET /staff/{staffId}/schedule - Week offset outside horizon: staff_id=%d, week=%d", staffID, weekOffset)
			handlers.RespondBadRequest(w, msgInvalidWeekOffset)

		case errors.Is(err, getWeekView.ErrInvalidInput):
			h.logger.Warn("GET /staff/{staffId}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /staff/{staffId}/schedule - Failed to build week view: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
