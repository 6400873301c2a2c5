package jobs

import (
	"context"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// WeeklyJob фоновый цикл смены недели: при переходе через понедельник
// материализует сетку следующей недели для всех записываемых мастеров
// и закрывает ведомость прошедшей недели
type WeeklyJob struct {
	staffRepo       StaffRepository
	staffService    StaffService
	earningsService EarningsService
	interval        time.Duration
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger

	lastWeekStart time.Time
}

// NewWeeklyJob создает новый экземпляр цикла смены недели
func NewWeeklyJob(
	staffRepo StaffRepository,
	staffService StaffService,
	earningsService EarningsService,
	interval time.Duration,
	location *time.Location,
	logger Logger,
) *WeeklyJob {
	return &WeeklyJob{
		staffRepo:       staffRepo,
		staffService:    staffService,
		earningsService: earningsService,
		interval:        interval,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (j *WeeklyJob) WithTimeProvider(tp TimeProvider) *WeeklyJob {
	j.timeProvider = tp
	return j
}

// Run запускает цикл до отмены контекста.
// Первый проход выполняется сразу, чтобы после простоя сервиса
// расписание догнало текущую неделю
func (j *WeeklyJob) Run(ctx context.Context) {
	j.logger.Info("WeeklyJob: started, interval=%s", j.interval)

	j.RunOnce(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("WeeklyJob: stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce проверяет смену недели и выполняет переход при необходимости
func (j *WeeklyJob) RunOnce(ctx context.Context) {
	weekStart := domain.WeekStart(j.timeProvider.Now(), j.location)
	if weekStart.Equal(j.lastWeekStart) {
		return
	}

	j.logger.Info("WeeklyJob: processing week starting %s", weekStart.Format(domain.DateFormat))

	staffIDs, err := j.staffRepo.ListIDs(ctx, true)
	if err != nil {
		j.logger.Error("WeeklyJob: failed to list staff: %v", err)
		return
	}

	// Горизонт записи всегда покрыт: текущая и следующая неделя
	for offset := 0; offset < domain.BookableWeeks; offset++ {
		target := weekStart.AddDate(0, 0, offset*7)
		if err := j.staffService.MaterializeWeekForAll(ctx, staffIDs, target); err != nil {
			j.logger.Error("WeeklyJob: failed to materialize week %s: %v", target.Format(domain.DateFormat), err)
			return
		}
	}

	// Ролловер архивирует и чистит только строки старше текущей недели,
	// поэтому его безопасно выполнять и на первом проходе после запуска:
	// при пустой ведомости это no-op, после простоя сервиса он проводит
	// пропущенные недели
	result, err := j.earningsService.Rollover(ctx)
	if err != nil {
		j.logger.Error("WeeklyJob: earnings rollover failed: %v", err)
		return
	}
	j.logger.Info("WeeklyJob: earnings rollover archived %d weekly totals", result.StaffArchived)

	j.lastWeekStart = weekStart
	j.logger.Info("WeeklyJob: week %s processed for %d staff", weekStart.Format(domain.DateFormat), len(staffIDs))
}
