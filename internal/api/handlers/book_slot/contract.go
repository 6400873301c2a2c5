package book_slot

import (
	"context"

	bookSlot "github.com/dcastano/Barberia-BookingService/internal/usecase/book_slot"
)

type BookSlotUseCase interface {
	Execute(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
