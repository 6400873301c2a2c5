package release_schedule

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	ReleaseNonFixed(ctx context.Context, req *models.ReleaseRequest) (*models.ReleaseResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
