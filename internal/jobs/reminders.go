package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// RemindersJob фоновый цикл напоминаний: находит записи на завтра,
// по которым напоминание ещё не отправлялось, и шлёт сообщение клиенту
type RemindersJob struct {
	appointmentRepo AppointmentRepository
	notifier        NotifierClient
	interval        time.Duration
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewRemindersJob создает новый экземпляр цикла напоминаний
func NewRemindersJob(
	appointmentRepo AppointmentRepository,
	notifier NotifierClient,
	interval time.Duration,
	location *time.Location,
	logger Logger,
) *RemindersJob {
	return &RemindersJob{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		interval:        interval,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (j *RemindersJob) WithTimeProvider(tp TimeProvider) *RemindersJob {
	j.timeProvider = tp
	return j
}

// Run запускает цикл до отмены контекста
func (j *RemindersJob) Run(ctx context.Context) {
	j.logger.Info("RemindersJob: started, interval=%s", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("RemindersJob: stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход напоминаний
func (j *RemindersJob) RunOnce(ctx context.Context) {
	now := j.timeProvider.Now().In(j.location)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.location).AddDate(0, 0, 1)

	pending, err := j.appointmentRepo.ListReminderPending(ctx, tomorrow)
	if err != nil {
		j.logger.Error("RemindersJob: failed to list pending reminders: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	j.logger.Info("RemindersJob: %d reminders pending for %s", len(pending), tomorrow.Format(domain.DateFormat))

	for _, appt := range pending {
		text := fmt.Sprintf("%s, te recordamos tu cita de manana a las %s.", appt.ClientName, appt.Time.Display())
		if err := j.notifier.SendBestEffort(ctx, appt.ClientPhone, text); err != nil {
			// Недоставленное напоминание попробуем снова на следующем тике
			j.logger.Warn("RemindersJob: reminder for appointment id=%d not delivered: %v", appt.ID, err)
			continue
		}

		if err := j.appointmentRepo.MarkReminderSent(ctx, appt.ID); err != nil {
			j.logger.Error("RemindersJob: failed to mark reminder sent for appointment id=%d: %v", appt.ID, err)
		}
	}
}
