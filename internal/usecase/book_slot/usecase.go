package book_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	appointmentRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/availability"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
)

// notifyTimeout таймаут для отправки уведомления после коммита
const notifyTimeout = 10 * time.Second

// UseCase use case записи клиента на слот
type UseCase struct {
	staffRepo        StaffRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	notifier         NotifierClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepo StaffRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:        staffRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		notifier:         notifier,
		txManager:        txManager,
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

// Execute выполняет use case записи клиента
// Использует сериализуемую транзакцию для предотвращения двойной записи;
// уникальный индекс БД остаётся авторитетной защитой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: staff=%d, day=%s, weekOffset=%d, time=%s",
		req.StaffID, req.Day, req.WeekOffset, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	day, err := parseDay(req.Day)
	if err != nil {
		uc.logger.Warn("BookSlot: %v", err)
		return nil, err
	}

	tod, err := parseSlotTime(req.Time)
	if err != nil {
		uc.logger.Warn("BookSlot: %v", err)
		return nil, err
	}

	// 2. Мастер должен существовать и вести запись
	member, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("BookSlot: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("BookSlot: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !member.IsBookable() {
		uc.logger.Warn("BookSlot: staff id=%d is not bookable", req.StaffID)
		return nil, ErrStaffNotBookable
	}

	// 3. Переводим (день, смещение) в календарную дату
	now := uc.timeProvider.Now()
	date, err := domain.ResolveDate(now, uc.location, day, req.WeekOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	key := domain.NewSlotKey(req.StaffID, date, tod)

	var result *domain.Appointment

	// 4. Проверка и создание записи в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Слот должен существовать в сетке мастера и быть открыт.
		// Внутри транзакции чтение берет строку с блокировкой FOR UPDATE
		slot, err := uc.availabilityRepo.GetByKey(txCtx, key)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
				return ErrSlotNotOffered
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		if slot.Blocked {
			return ErrSlotBlocked
		}

		// 4.2. Повторная проверка занятости перед вставкой: сужает гонку
		// и дает точную ошибку вместо нарушения уникального индекса
		_, err = uc.appointmentRepo.GetByKey(txCtx, key)
		if err == nil {
			return ErrSlotTaken
		}
		if !errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		// 4.3. Создаем запись; нарушение уникального индекса означает,
		// что параллельная транзакция успела раньше
		appt := &domain.Appointment{
			StaffID:     req.StaffID,
			Date:        key.Date,
			Day:         key.Day,
			Time:        key.Time,
			ClientName:  strings.TrimSpace(req.ClientName),
			ClientPhone: strings.TrimSpace(req.ClientPhone),
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrSlotBlocked) || errors.Is(err, ErrSlotNotOffered) {
			uc.logger.Warn("BookSlot: slot staff=%d date=%s time=%s rejected: %v",
				req.StaffID, key.Date.Format(domain.DateFormat), key.Time, err)
			return nil, err
		}
		uc.logger.Error("BookSlot: failed for staff=%d: %v", req.StaffID, err)
		return nil, err
	}

	uc.logger.Info("BookSlot: created appointment id=%d for staff=%d date=%s time=%s",
		result.ID, result.StaffID, result.Date.Format(domain.DateFormat), result.Time)

	// 5. Уведомление клиента после коммита, вне транзакции.
	// Недоставленное сообщение не отменяет запись
	uc.notifyAsync(result, member.Name)

	return &Response{
		ID:          result.ID,
		StaffID:     result.StaffID,
		StaffName:   member.Name,
		Date:        result.Date.Format(domain.DateFormat),
		Day:         string(result.Day),
		Time:        result.Time.String(),
		Display:     result.Time.Display(),
		ClientName:  result.ClientName,
		ClientPhone: result.ClientPhone,
		Fixed:       result.Fixed,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// notifyAsync отправляет подтверждение записи, не задерживая ответ клиенту
func (uc *UseCase) notifyAsync(appt *domain.Appointment, staffName string) {
	text := fmt.Sprintf("%s, tu cita con %s quedo agendada para el %s a las %s.",
		appt.ClientName, staffName, appt.Date.Format(domain.DateFormat), appt.Time.Display())

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifier.SendBestEffort(ctx, appt.ClientPhone, text); err != nil {
			uc.logger.Warn("BookSlot: confirmation for appointment id=%d not delivered: %v", appt.ID, err)
		}
	}()
}
