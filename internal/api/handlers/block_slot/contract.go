package block_slot

import (
	"context"

	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	BlockSlot(ctx context.Context, req *models.SlotRequest) error
	UnblockSlot(ctx context.Context, req *models.SlotRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
