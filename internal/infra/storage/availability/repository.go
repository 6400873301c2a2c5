package availability

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/dbmetrics"
	"github.com/dcastano/Barberia-BookingService/pkg/psqlbuilder"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// Repository репозиторий сетки доступности мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// MaterializeWeek идемпотентно создает строки сетки на одну календарную
// неделю: по одной на каждую пару (день, время из сетки). Существующие
// строки не дублируются и их состояние blocked не перезаписывается
// (ON CONFLICT DO NOTHING).
func (r *Repository) MaterializeWeek(ctx context.Context, staffID int64, weekStart time.Time, grid []types.TimeOfDay) error {
	if len(grid) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("availability_slots").
		Columns("staff_id", "slot_date", "day_of_week", "time_minutes", "blocked")

	for dayIdx, day := range domain.WeekDays {
		date := weekStart.AddDate(0, 0, dayIdx)
		for _, tod := range grid {
			insertBuilder = insertBuilder.Values(staffID, date, day, tod, false)
		}
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (staff_id, slot_date, time_minutes) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MaterializeWeek - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MaterializeWeek - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Block помечает слот заблокированным, создавая строку при отсутствии.
// Записи клиентов этот метод не трогает: блокировка живет строго на
// уровне доступности.
func (r *Repository) Block(ctx context.Context, key domain.SlotKey) error {
	return r.upsertBlocked(ctx, "Block", key, true)
}

// Unblock помечает слот открытым, создавая строку при отсутствии -
// "активировать" работает и для никогда не существовавшего слота
func (r *Repository) Unblock(ctx context.Context, key domain.SlotKey) error {
	return r.upsertBlocked(ctx, "Unblock", key, false)
}

func (r *Repository) upsertBlocked(ctx context.Context, op string, key domain.SlotKey, blocked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns("staff_id", "slot_date", "day_of_week", "time_minutes", "blocked").
		Values(key.StaffID, key.Date, key.Day, key.Time, blocked).
		Suffix("ON CONFLICT (staff_id, slot_date, time_minutes) DO UPDATE SET blocked = ?, updated_at = NOW()", blocked).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build upsert query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute upsert: %v", ErrExecQuery, op, err)
	}

	return nil
}

// GetByKey получает строку сетки по ключу слота.
// Возвращает ErrSlotNotFound для нематериализованного слота.
func (r *Repository) GetByKey(ctx context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{
			"staff_id":     key.StaffID,
			"slot_date":    key.Date,
			"time_minutes": key.Time,
		})

	// Внутри транзакции бронирования блокируем строку от конкурентных изменений
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListOpen возвращает открытые (не заблокированные) слоты мастера за неделю
func (r *Repository) ListOpen(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.AvailabilitySlot, error) {
	return r.listByBlocked(ctx, "ListOpen", staffID, rng, false)
}

// ListBlocked возвращает только явно заблокированные слоты.
// Нематериализованные слоты сюда не попадают: они "не предлагаются",
// а не "закрыты администратором".
func (r *Repository) ListBlocked(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.AvailabilitySlot, error) {
	return r.listByBlocked(ctx, "ListBlocked", staffID, rng, true)
}

func (r *Repository) listByBlocked(ctx context.Context, op string, staffID int64, rng domain.WeekRange, blocked bool) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"staff_id": staffID, "blocked": blocked}).
		Where(squirrel.GtOrEq{"slot_date": rng.Start}).
		Where(squirrel.LtOrEq{"slot_date": rng.End}).
		OrderBy("slot_date ASC, time_minutes ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListTimes возвращает все времена, реально присутствующие в сетке или в
// записях мастера за неделю: клиенту никогда не показывается полная
// теоретическая сетка. Сортировка числовая, по минутам от полуночи.
func (r *Repository) ListTimes(ctx context.Context, staffID int64, rng domain.WeekRange) ([]types.TimeOfDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT time_minutes").
		From("availability_slots").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.GtOrEq{"slot_date": rng.Start}).
		Where(squirrel.LtOrEq{"slot_date": rng.End}).
		Suffix("UNION SELECT DISTINCT time_minutes FROM appointments WHERE staff_id = ? AND slot_date >= ? AND slot_date <= ?",
			staffID, rng.Start, rng.End).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeOfDay, 0)
	for rows.Next() {
		var tod types.TimeOfDay
		if err := rows.Scan(&tod); err != nil {
			return nil, fmt.Errorf("%w: ListTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, tod)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimes - rows error: %v", ErrScanRow, err)
	}

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	return times, nil
}

// UpsertOpenByTime массово открывает слот на заданное время для набора
// мастеров и дат (глобальное добавление смены). Существующие строки
// разблокируются.
func (r *Repository) UpsertOpenByTime(ctx context.Context, staffIDs []int64, dates []time.Time, tod types.TimeOfDay) error {
	if len(staffIDs) == 0 || len(dates) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("availability_slots").
		Columns("staff_id", "slot_date", "day_of_week", "time_minutes", "blocked")

	for _, staffID := range staffIDs {
		for _, date := range dates {
			insertBuilder = insertBuilder.Values(staffID, date, domain.WeekdayFromTime(date), tod, false)
		}
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (staff_id, slot_date, time_minutes) DO UPDATE SET blocked = FALSE, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertOpenByTime - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOpenByTime - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteByTime массово удаляет слот на заданное время (глобальное удаление
// смены). Строки физически удаляются: слот возвращается в состояние
// "не предлагается", это не то же самое, что блокировка.
func (r *Repository) DeleteByTime(ctx context.Context, staffIDs []int64, dates []time.Time, tod types.TimeOfDay) (int64, error) {
	if len(staffIDs) == 0 || len(dates) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{
			"staff_id":     staffIDs,
			"slot_date":    dates,
			"time_minutes": tod,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByTime - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByTime - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByTime - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// DeleteByStaff удаляет всю сетку мастера (используется при каскадной
// очистке в тестах; в БД каскад обеспечивается внешним ключом)
func (r *Repository) DeleteByStaff(ctx context.Context, staffID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByStaff - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByStaff - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

var slotColumns = []string{
	"id",
	"staff_id",
	"slot_date",
	"day_of_week",
	"time_minutes",
	"blocked",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.StaffID,
		&slot.Date,
		&slot.Day,
		&slot.Time,
		&slot.Blocked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
