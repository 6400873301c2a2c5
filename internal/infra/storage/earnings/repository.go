package earnings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/dbmetrics"
	"github.com/dcastano/Barberia-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий недельной ведомости заработка
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ведомости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// AddEntry добавляет строку в текущую ведомость
func (r *Repository) AddEntry(ctx context.Context, entry *domain.EarningEntry) (*domain.EarningEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("earnings").
		Columns("staff_id", "amount", "description", "entry_date").
		Values(entry.StaffID, entry.Amount, entry.Description, entry.EntryDate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddEntry - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddEntry - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// ListEntries возвращает строки ведомости мастера за неделю
func (r *Repository) ListEntries(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.EarningEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "amount", "description", "entry_date", "created_at").
		From("earnings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"entry_date": rng.Start}).
		Where(squirrel.LtOrEq{"entry_date": rng.End}).
		OrderBy("entry_date ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEntries - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEntries - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.EarningEntry, 0)
	for rows.Next() {
		var entry domain.EarningEntry
		var createdAt sql.NullTime
		err := rows.Scan(
			&entry.ID,
			&entry.StaffID,
			&entry.Amount,
			&entry.Description,
			&entry.EntryDate,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEntries - scan row: %v", ErrScanRow, err)
		}
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// WeekTotalsBefore возвращает суммы по мастерам и неделям для всех строк
// ведомости старше даты. Недели считаются от понедельника, как WeekStart.
// Ролловер архивирует каждый такой итог перед очисткой ведомости, поэтому
// после простоя сервиса непроведённые недели не теряются
func (r *Repository) WeekTotalsBefore(ctx context.Context, cutoff time.Time) ([]*domain.WeekEarnings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("staff_id", "date_trunc('week', entry_date)::date AS week_start", "SUM(amount)").
		From("earnings").
		Where(squirrel.Lt{"entry_date": cutoff}).
		GroupBy("staff_id", "week_start").
		OrderBy("week_start ASC, staff_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: WeekTotalsBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: WeekTotalsBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	totals := make([]*domain.WeekEarnings, 0)
	for rows.Next() {
		var week domain.WeekEarnings
		if err := rows.Scan(&week.StaffID, &week.WeekStart, &week.Total); err != nil {
			return nil, fmt.Errorf("%w: WeekTotalsBefore - scan row: %v", ErrScanRow, err)
		}
		totals = append(totals, &week)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: WeekTotalsBefore - rows error: %v", ErrScanRow, err)
	}

	return totals, nil
}

// ArchiveWeek записывает итог недели мастера в архив
func (r *Repository) ArchiveWeek(ctx context.Context, week *domain.WeekEarnings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("earnings_archive").
		Columns("staff_id", "week_start", "total", "commission").
		Values(week.StaffID, week.WeekStart, week.Total, week.Commission).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ArchiveWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ArchiveWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteEntriesBefore очищает ведомость от строк старше даты
// (завершающий шаг еженедельного ролловера)
func (r *Repository) DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("earnings").
		Where(squirrel.Lt{"entry_date": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEntriesBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEntriesBefore - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEntriesBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
