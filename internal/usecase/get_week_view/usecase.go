package get_week_view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
)

// UseCase use case построения недельного расписания мастера
type UseCase struct {
	staffRepo        StaffRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:        staffRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case построения недельного расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekView: staff=%d, weekOffset=%d", req.StaffID, req.WeekOffset)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeekView: validation failed: %v", err)
		return nil, err
	}

	// 2. Мастер должен существовать и вести запись
	member, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetWeekView: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetWeekView: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !member.IsBookable() {
		uc.logger.Warn("GetWeekView: staff id=%d is not bookable", req.StaffID)
		return nil, ErrStaffNotBookable
	}

	// 3. Определяем границы недели
	now := uc.timeProvider.Now()
	rng, err := domain.ResolveWeekRange(now, uc.location, req.WeekOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve week range: %v", ErrInvalidWeekOffset, err)
	}

	// 4. Строки сетки: объединение времён слотов и записей за неделю.
	// Время, существующее хоть в одном дне, попадает в каждый день недели
	times, err := uc.availabilityRepo.ListTimes(ctx, req.StaffID, rng)
	if err != nil {
		uc.logger.Error("GetWeekView: failed to list times for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to list times: %v", ErrInternal, err)
	}

	// 5. Содержимое ячеек: слоты расписания и записи клиентов
	open, err := uc.availabilityRepo.ListOpen(ctx, req.StaffID, rng)
	if err != nil {
		uc.logger.Error("GetWeekView: failed to list open slots for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to list open slots: %v", ErrInternal, err)
	}

	blockedSlots, err := uc.availabilityRepo.ListBlocked(ctx, req.StaffID, rng)
	if err != nil {
		uc.logger.Error("GetWeekView: failed to list blocked slots for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to list blocked slots: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListByStaff(ctx, req.StaffID, rng)
	if err != nil {
		uc.logger.Error("GetWeekView: failed to list appointments for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 6. Разбиваем сетку на состояния
	days := buildWeekView(rng, times, append(open, blockedSlots...), appointments)

	uc.logger.Info("GetWeekView: built view for staff=%d, weekStart=%s, %d time rows",
		req.StaffID, rng.Start.Format(domain.DateFormat), len(times))

	return &Response{
		StaffID:    member.ID,
		StaffName:  member.Name,
		WeekOffset: req.WeekOffset,
		WeekStart:  rng.Start.Format(domain.DateFormat),
		Days:       days,
	}, nil
}
