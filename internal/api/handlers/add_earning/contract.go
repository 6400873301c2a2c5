package add_earning

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/earnings/models"
)

type EarningsService interface {
	AddEntry(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
