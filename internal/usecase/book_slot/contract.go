package book_slot

import (
	"context"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// AvailabilityRepository интерфейс репозитория слотов расписания
type AvailabilityRepository interface {
	// GetByKey внутри транзакции берет строку с блокировкой FOR UPDATE
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error)
}

// AppointmentRepository интерфейс репозитория записей клиентов
type AppointmentRepository interface {
	GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Appointment, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// NotifierClient интерфейс клиента шлюза уведомлений
type NotifierClient interface {
	SendBestEffort(ctx context.Context, phone, text string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
