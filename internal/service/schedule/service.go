package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	appointmentRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/appointment"
	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
)

// Service сервис управления расписанием мастеров
type Service struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	staffRepo        StaffRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		staffRepo:        staffRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		location:         location,
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// BlockSlot закрывает слот от записи
// Слот с существующей записью клиента заблокировать нельзя
func (s *Service) BlockSlot(ctx context.Context, req *models.SlotRequest) error {
	key, err := req.ToSlotKey(s.timeProvider.Now(), s.location)
	if err != nil {
		s.logger.Warn("BlockSlot: invalid slot reference staff=%d day=%s week=%d time=%s", req.StaffID, req.Day, req.WeekOffset, req.Time)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("BlockSlot: blocking staff=%d date=%s time=%s", key.StaffID, key.Date.Format(domain.DateFormat), key.Time)

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Слот с записью клиента закрыть нельзя
		_, err := s.appointmentRepo.GetByKey(ctx, key)
		if err == nil {
			return ErrSlotBooked
		}
		if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: BlockSlot - appointment lookup: %v", ErrInternal, err)
		}

		if err := s.availabilityRepo.Block(ctx, key); err != nil {
			return fmt.Errorf("%w: BlockSlot - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotBooked) {
			s.logger.Warn("BlockSlot: slot staff=%d date=%s time=%s has an appointment", key.StaffID, key.Date.Format(domain.DateFormat), key.Time)
			return ErrSlotBooked
		}
		s.logger.Error("BlockSlot: failed for staff=%d: %v", key.StaffID, err)
		return err
	}

	s.logger.Info("BlockSlot: blocked staff=%d date=%s time=%s", key.StaffID, key.Date.Format(domain.DateFormat), key.Time)
	return nil
}

// UnblockSlot снова открывает слот для записи
// Операция идемпотентна: незаблокированный слот остаётся открытым
func (s *Service) UnblockSlot(ctx context.Context, req *models.SlotRequest) error {
	key, err := req.ToSlotKey(s.timeProvider.Now(), s.location)
	if err != nil {
		s.logger.Warn("UnblockSlot: invalid slot reference staff=%d day=%s week=%d time=%s", req.StaffID, req.Day, req.WeekOffset, req.Time)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.availabilityRepo.Unblock(ctx, key); err != nil {
		s.logger.Error("UnblockSlot: failed for staff=%d: %v", key.StaffID, err)
		return fmt.Errorf("%w: UnblockSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UnblockSlot: unblocked staff=%d date=%s time=%s", key.StaffID, key.Date.Format(domain.DateFormat), key.Time)
	return nil
}

// CancelAppointment удаляет запись клиента и снова открывает слот
// Операция идемпотентна: отмена несуществующей записи не считается ошибкой
func (s *Service) CancelAppointment(ctx context.Context, req *models.SlotRequest) error {
	key, err := req.ToSlotKey(s.timeProvider.Now(), s.location)
	if err != nil {
		s.logger.Warn("CancelAppointment: invalid slot reference staff=%d day=%s week=%d time=%s", req.StaffID, req.Day, req.WeekOffset, req.Time)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("CancelAppointment: cancelling staff=%d date=%s time=%s", key.StaffID, key.Date.Format(domain.DateFormat), key.Time)

	if err := s.appointmentRepo.DeleteByKey(ctx, key); err != nil {
		s.logger.Error("CancelAppointment: failed for staff=%d: %v", key.StaffID, err)
		return fmt.Errorf("%w: CancelAppointment - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ToggleFixed переключает закрепление записи клиента
// Закреплённые записи переживают еженедельное освобождение расписания
func (s *Service) ToggleFixed(ctx context.Context, appointmentID int64) (*models.ToggleFixedResponse, error) {
	fixed, err := s.appointmentRepo.ToggleFixed(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("ToggleFixed: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("ToggleFixed: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: ToggleFixed - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ToggleFixed: appointment id=%d fixed=%t", appointmentID, fixed)
	return &models.ToggleFixedResponse{AppointmentID: appointmentID, Fixed: fixed}, nil
}

// ReleaseNonFixed удаляет все незакреплённые записи мастера и снова
// открывает их слоты. Выполняется одной serializable транзакцией,
// чтобы параллельное бронирование не потерялось
func (s *Service) ReleaseNonFixed(ctx context.Context, req *models.ReleaseRequest) (*models.ReleaseResponse, error) {
	s.logger.Info("ReleaseNonFixed: releasing schedule for staff=%d", req.StaffID)

	var released int64
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Снимаем ключи до удаления, чтобы знать какие слоты открыть
		appointments, err := s.appointmentRepo.ListNonFixed(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("%w: ReleaseNonFixed - list appointments: %v", ErrInternal, err)
		}

		released, err = s.appointmentRepo.DeleteNonFixed(ctx, req.StaffID)
		if err != nil {
			return fmt.Errorf("%w: ReleaseNonFixed - delete appointments: %v", ErrInternal, err)
		}

		for _, appt := range appointments {
			if err := s.availabilityRepo.Unblock(ctx, appt.Key()); err != nil {
				return fmt.Errorf("%w: ReleaseNonFixed - reopen slot: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReleaseNonFixed: failed for staff=%d: %v", req.StaffID, err)
		return nil, err
	}

	s.logger.Info("ReleaseNonFixed: released %d appointments for staff=%d", released, req.StaffID)
	return &models.ReleaseResponse{StaffID: req.StaffID, Released: released}, nil
}

// ManageGlobalShift добавляет или убирает время из сетки всех
// записываемых мастеров на весь горизонт записи
func (s *Service) ManageGlobalShift(ctx context.Context, req *models.GlobalShiftRequest) (*models.GlobalShiftResponse, error) {
	if req.Action != models.ShiftActionAdd && req.Action != models.ShiftActionRemove {
		s.logger.Warn("ManageGlobalShift: unknown action=%s", req.Action)
		return nil, ErrInvalidShiftAction
	}

	tod, err := models.ParseSlotTime(req.Time)
	if err != nil {
		s.logger.Warn("ManageGlobalShift: invalid time=%s", req.Time)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Пустой день означает сдвиг по всем дням недели
	dayScope := models.ShiftAllDays
	var dayFilter *domain.Weekday
	if req.Day != "" && req.Day != models.ShiftAllDays {
		day, err := domain.ParseWeekday(req.Day)
		if err != nil {
			s.logger.Warn("ManageGlobalShift: invalid day=%s", req.Day)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, models.ErrInvalidDay)
		}
		dayScope = string(day)
		dayFilter = &day
	}

	s.logger.Info("ManageGlobalShift: action=%s day=%s time=%s", req.Action, dayScope, tod)

	staffIDs, err := s.staffRepo.ListIDs(ctx, true)
	if err != nil {
		s.logger.Error("ManageGlobalShift: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: ManageGlobalShift - list staff: %v", ErrInternal, err)
	}
	if len(staffIDs) == 0 {
		return &models.GlobalShiftResponse{Action: req.Action, Day: dayScope, Time: tod.String()}, nil
	}

	dates := s.horizonDates(dayFilter)

	var affected int64
	switch req.Action {
	case models.ShiftActionAdd:
		if err := s.availabilityRepo.UpsertOpenByTime(ctx, staffIDs, dates, tod); err != nil {
			s.logger.Error("ManageGlobalShift: add failed: %v", err)
			return nil, fmt.Errorf("%w: ManageGlobalShift - upsert slots: %v", ErrInternal, err)
		}
		affected = int64(len(staffIDs) * len(dates))
	case models.ShiftActionRemove:
		affected, err = s.availabilityRepo.DeleteByTime(ctx, staffIDs, dates, tod)
		if err != nil {
			s.logger.Error("ManageGlobalShift: remove failed: %v", err)
			return nil, fmt.Errorf("%w: ManageGlobalShift - delete slots: %v", ErrInternal, err)
		}
	}

	s.logger.Info("ManageGlobalShift: action=%s day=%s time=%s affected %d slots across %d staff", req.Action, dayScope, tod, affected, len(staffIDs))
	return &models.GlobalShiftResponse{
		Action:        req.Action,
		Day:           dayScope,
		Time:          tod.String(),
		StaffAffected: len(staffIDs),
		SlotsAffected: affected,
	}, nil
}

// horizonDates возвращает даты горизонта записи (текущая и следующая неделя).
// Непустой фильтр оставляет только даты указанного дня недели
func (s *Service) horizonDates(dayFilter *domain.Weekday) []time.Time {
	now := s.timeProvider.Now()
	dates := make([]time.Time, 0, domain.BookableWeeks*len(domain.WeekDays))
	for offset := 0; offset < domain.BookableWeeks; offset++ {
		for _, day := range domain.WeekDays {
			if dayFilter != nil && day != *dayFilter {
				continue
			}
			date, err := domain.ResolveDate(now, s.location, day, offset)
			if err != nil {
				continue
			}
			dates = append(dates, date)
		}
	}
	return dates
}
