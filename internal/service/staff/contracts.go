package staff

import (
	"context"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	Create(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error)
	GetByID(ctx context.Context, id int64) (*domain.StaffMember, error)
	GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error)
	List(ctx context.Context, onlyBookable bool) ([]*domain.StaffMember, error)
	Update(ctx context.Context, member *domain.StaffMember) error
	UpdatePassword(ctx context.Context, id int64, password string) error
	Delete(ctx context.Context, id int64) error
}

// AvailabilityRepository интерфейс репозитория слотов расписания
type AvailabilityRepository interface {
	MaterializeWeek(ctx context.Context, staffID int64, weekStart time.Time, grid []types.TimeOfDay) error
	DeleteByStaff(ctx context.Context, staffID int64) error
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
