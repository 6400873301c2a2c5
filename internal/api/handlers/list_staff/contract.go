package list_staff

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
)

type StaffService interface {
	List(ctx context.Context, onlyBookable bool) (*models.StaffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
