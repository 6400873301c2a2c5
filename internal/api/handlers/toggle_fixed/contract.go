package toggle_fixed

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ToggleFixed(ctx context.Context, appointmentID int64) (*models.ToggleFixedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
