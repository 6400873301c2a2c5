package login

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
)

type StaffService interface {
	Authenticate(ctx context.Context, req *models.AuthRequest) (*models.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
