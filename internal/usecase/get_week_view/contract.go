package get_week_view

import (
	"context"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// AvailabilityRepository интерфейс репозитория слотов расписания
type AvailabilityRepository interface {
	// ListTimes возвращает объединение времён недели: слоты расписания
	// плюс времена существующих записей
	ListTimes(ctx context.Context, staffID int64, rng domain.WeekRange) ([]types.TimeOfDay, error)
	ListOpen(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.AvailabilitySlot, error)
	ListBlocked(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.AvailabilitySlot, error)
}

// AppointmentRepository интерфейс репозитория записей клиентов
type AppointmentRepository interface {
	ListByStaff(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
