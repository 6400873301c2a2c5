package jobs

import (
	"context"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	earningsModels "github.com/dcastano/Barberia-BookingService/internal/service/earnings/models"
)

// AppointmentRepository интерфейс репозитория записей клиентов
type AppointmentRepository interface {
	ListReminderPending(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListIDs(ctx context.Context, onlyBookable bool) ([]int64, error)
}

// StaffService интерфейс сервиса мастеров
type StaffService interface {
	MaterializeWeekForAll(ctx context.Context, staffIDs []int64, weekStart time.Time) error
}

// EarningsService интерфейс сервиса ведомости
type EarningsService interface {
	Rollover(ctx context.Context) (*earningsModels.RolloverResponse, error)
}

// NotifierClient интерфейс клиента шлюза уведомлений
type NotifierClient interface {
	SendBestEffort(ctx context.Context, phone, text string) error
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
