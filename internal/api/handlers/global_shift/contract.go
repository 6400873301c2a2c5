package global_shift

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ManageGlobalShift(ctx context.Context, req *models.GlobalShiftRequest) (*models.GlobalShiftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
