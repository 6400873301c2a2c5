package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/dbmetrics"
	"github.com/dcastano/Barberia-BookingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL "unique_violation"
const pgUniqueViolation = "23505"

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись клиента на слот.
// Уникальный индекс (staff_id, slot_date, time_minutes): авторитетная
// защита от двойной записи: при конкурентной вставке на тот же ключ
// вторая попытка получает ErrSlotTaken, а не дубликат. Предварительная
// проверка в use case лишь сужает окно гонки ради понятной ошибки.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"staff_id",
			"slot_date",
			"day_of_week",
			"time_minutes",
			"client_name",
			"client_phone",
			"fixed",
			"reminder_sent",
		).
		Values(
			appt.StaffID,
			appt.Date,
			appt.Day,
			appt.Time,
			appt.ClientName,
			appt.ClientPhone,
			appt.Fixed,
			appt.ReminderSent,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByKey получает запись по ключу слота.
// Возвращает ErrAppointmentNotFound, если слот свободен.
func (r *Repository) GetByKey(ctx context.Context, key domain.SlotKey) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{
			"staff_id":     key.StaffID,
			"slot_date":    key.Date,
			"time_minutes": key.Time,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListByStaff возвращает записи мастера за неделю,
// отсортированные по дате и времени
func (r *Repository) ListByStaff(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"slot_date": rng.Start}).
		Where(squirrel.LtOrEq{"slot_date": rng.End}).
		OrderBy("slot_date ASC, time_minutes ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// DeleteByKey удаляет запись по ключу слота. Отмена идемпотентна:
// отсутствие записи: успешный no-op, а не ошибка.
func (r *Repository) DeleteByKey(ctx context.Context, key domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{
			"staff_id":     key.StaffID,
			"slot_date":    key.Date,
			"time_minutes": key.Time,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByKey - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByKey - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// ToggleFixed инвертирует флаг "постоянный клиент".
// Возвращает новое значение флага.
func (r *Repository) ToggleFixed(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("fixed", squirrel.Expr("NOT fixed")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING fixed").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ToggleFixed - build update query: %v", ErrBuildQuery, err)
	}

	var fixed bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&fixed)
	if err == sql.ErrNoRows {
		return false, ErrAppointmentNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: ToggleFixed - execute update: %v", ErrExecQuery, err)
	}

	return fixed, nil
}

// ListNonFixed возвращает все непостоянные записи мастера.
// Внутри транзакции строки блокируются (FOR UPDATE): метод используется
// в массовой очистке release_non_fixed.
func (r *Repository) ListNonFixed(ctx context.Context, staffID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"staff_id": staffID, "fixed": false}).
		OrderBy("slot_date ASC, time_minutes ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNonFixed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNonFixed - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// DeleteNonFixed удаляет все непостоянные записи мастера,
// возвращает количество удаленных строк
func (r *Repository) DeleteNonFixed(ctx context.Context, staffID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"staff_id": staffID, "fixed": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteNonFixed - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteNonFixed - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteNonFixed - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// ListReminderPending возвращает записи на указанную дату,
// для которых еще не отправлено напоминание
func (r *Repository) ListReminderPending(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"slot_date": date, "reminder_sent": false}).
		OrderBy("staff_id ASC, time_minutes ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListReminderPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReminderPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// MarkReminderSent помечает, что напоминание по записи отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

var appointmentColumns = []string{
	"id",
	"staff_id",
	"slot_date",
	"day_of_week",
	"time_minutes",
	"client_name",
	"client_phone",
	"fixed",
	"reminder_sent",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.StaffID,
		&appt.Date,
		&appt.Day,
		&appt.Time,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.Fixed,
		&appt.ReminderSent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
