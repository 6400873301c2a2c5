package schedule

import (
	"context"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория слотов расписания
type AvailabilityRepository interface {
	Block(ctx context.Context, key domain.SlotKey) error
	Unblock(ctx context.Context, key domain.SlotKey) error
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error)
	UpsertOpenByTime(ctx context.Context, staffIDs []int64, dates []time.Time, tod types.TimeOfDay) error
	DeleteByTime(ctx context.Context, staffIDs []int64, dates []time.Time, tod types.TimeOfDay) (int64, error)
}

// AppointmentRepository интерфейс репозитория записей клиентов
type AppointmentRepository interface {
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	DeleteByKey(ctx context.Context, key domain.SlotKey) error
	ToggleFixed(ctx context.Context, id int64) (bool, error)
	ListNonFixed(ctx context.Context, staffID int64) ([]*domain.Appointment, error)
	DeleteNonFixed(ctx context.Context, staffID int64) (int64, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListIDs(ctx context.Context, onlyBookable bool) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
