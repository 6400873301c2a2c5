package earnings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
	"github.com/dcastano/Barberia-BookingService/internal/service/earnings/models"
)

// Service сервис недельной ведомости заработка мастеров
type Service struct {
	earningsRepo EarningsRepository
	staffRepo    StaffRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса ведомости
func NewService(
	earningsRepo EarningsRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		earningsRepo: earningsRepo,
		staffRepo:    staffRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// AddEntry добавляет оказанную услугу в ведомость мастера текущим числом
func (s *Service) AddEntry(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error) {
	if req.Amount <= 0 {
		s.logger.Warn("AddEntry: non-positive amount=%f for staff=%d", req.Amount, req.StaffID)
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("AddEntry: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("AddEntry: staff lookup failed for id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: AddEntry - staff lookup: %v", ErrInternal, err)
	}

	entry := &domain.EarningEntry{
		StaffID:     req.StaffID,
		Amount:      req.Amount,
		Description: req.Description,
		EntryDate:   s.timeProvider.Now().In(s.location),
	}

	created, err := s.earningsRepo.AddEntry(ctx, entry)
	if err != nil {
		s.logger.Error("AddEntry: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: AddEntry - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddEntry: added entry id=%d amount=%.2f for staff=%d", created.ID, created.Amount, created.StaffID)
	return models.FromDomainEntry(created), nil
}

// WeekSummary возвращает итог мастера за текущую неделю:
// все строки ведомости, сумму и долю мастера по его проценту
func (s *Service) WeekSummary(ctx context.Context, staffID int64) (*models.WeekSummaryResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("WeekSummary: staff id=%d not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("WeekSummary: staff lookup failed for id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: WeekSummary - staff lookup: %v", ErrInternal, err)
	}

	rng, err := domain.ResolveWeekRange(s.timeProvider.Now(), s.location, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: WeekSummary - resolve week: %v", ErrInternal, err)
	}

	entries, err := s.earningsRepo.ListEntries(ctx, staffID, rng)
	if err != nil {
		s.logger.Error("WeekSummary: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: WeekSummary - list entries: %v", ErrInternal, err)
	}

	var total float64
	for _, e := range entries {
		total += e.Amount
	}

	return &models.WeekSummaryResponse{
		StaffID:    staffID,
		WeekStart:  models.FormatWeekStart(rng.Start),
		Total:      total,
		Commission: total * member.CommissionPct / 100,
		Entries:    models.FromDomainEntries(entries),
	}, nil
}

// Rollover закрывает прошедшие недели: переносит в архив итог каждого
// мастера за каждую неделю старше текущей и очищает ведомость.
// Архивация и очистка выполняются одной транзакцией, поэтому строки,
// оставшиеся с пропущенных недель (например после простоя сервиса),
// сначала попадают в архив и только потом удаляются
func (s *Service) Rollover(ctx context.Context) (*models.RolloverResponse, error) {
	now := s.timeProvider.Now()
	currentWeekStart := domain.WeekStart(now, s.location)
	prevWeekStart := currentWeekStart.AddDate(0, 0, -7)

	s.logger.Info("Rollover: closing weeks before %s", currentWeekStart.Format(domain.DateFormat))

	var archived int
	var cleared int64
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		totals, err := s.earningsRepo.WeekTotalsBefore(ctx, currentWeekStart)
		if err != nil {
			return fmt.Errorf("%w: Rollover - week totals: %v", ErrInternal, err)
		}

		for _, week := range totals {
			commissionPct := 0.0
			member, err := s.staffRepo.GetByID(ctx, week.StaffID)
			if err == nil {
				commissionPct = member.CommissionPct
			} else if !errors.Is(err, staffRepo.ErrStaffNotFound) {
				return fmt.Errorf("%w: Rollover - staff lookup: %v", ErrInternal, err)
			}
			// Удалённый мастер архивируется с нулевой долей

			week.Commission = week.Total * commissionPct / 100
			if err := s.earningsRepo.ArchiveWeek(ctx, week); err != nil {
				return fmt.Errorf("%w: Rollover - archive week: %v", ErrInternal, err)
			}
		}
		archived = len(totals)

		cleared, err = s.earningsRepo.DeleteEntriesBefore(ctx, currentWeekStart)
		if err != nil {
			return fmt.Errorf("%w: Rollover - clear entries: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Rollover: failed: %v", err)
		return nil, err
	}

	s.logger.Info("Rollover: archived %d weekly totals, cleared %d entries", archived, cleared)
	return &models.RolloverResponse{
		WeekStart:      prevWeekStart.Format(domain.DateFormat),
		StaffArchived:  archived,
		EntriesCleared: cleared,
	}, nil
}
