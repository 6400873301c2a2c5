package earnings

import (
	"context"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// EarningsRepository интерфейс репозитория недельной ведомости
type EarningsRepository interface {
	AddEntry(ctx context.Context, entry *domain.EarningEntry) (*domain.EarningEntry, error)
	ListEntries(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.EarningEntry, error)
	WeekTotalsBefore(ctx context.Context, cutoff time.Time) ([]*domain.WeekEarnings, error)
	ArchiveWeek(ctx context.Context, week *domain.WeekEarnings) error
	DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
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
