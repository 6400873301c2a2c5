package cancel_appointment

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CancelAppointment(ctx context.Context, req *models.SlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
