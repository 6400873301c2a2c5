package update_staff

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
)

type StaffService interface {
	Update(ctx context.Context, req *models.UpdateStaffRequest) (*models.StaffResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
