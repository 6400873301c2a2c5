package get_week_earnings

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/earnings/models"
)

type EarningsService interface {
	WeekSummary(ctx context.Context, staffID int64) (*models.WeekSummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
