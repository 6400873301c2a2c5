package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/dbmetrics"
	"github.com/dcastano/Barberia-BookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

// Repository репозиторий сотрудников барбершопа
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового сотрудника
func (r *Repository) Create(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff").
		Columns("name", "username", "password", "photo", "phone", "is_admin", "commission_pct").
		Values(
			member.Name,
			member.Username,
			member.Password,
			member.Photo,
			member.Phone,
			member.IsAdmin,
			member.CommissionPct,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&member.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	return member, nil
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUsername получает сотрудника по логину (для аутентификации)
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error) {
	return r.getOne(ctx, "GetByUsername", squirrel.Eq{"username": username})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(staffColumns...).
		From("staff").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	member, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan staff: %v", ErrScanRow, op, err)
	}

	return member, nil
}

// List возвращает сотрудников, отсортированных по имени.
// При onlyBookable=true администраторы исключаются: это список мастеров,
// который видит клиент на главной странице.
func (r *Repository) List(ctx context.Context, onlyBookable bool) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(staffColumns...).
		From("staff").
		OrderBy("name ASC")

	if onlyBookable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_admin": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// ListIDs возвращает ID сотрудников (для массовых операций с сеткой)
func (r *Repository) ListIDs(ctx context.Context, onlyBookable bool) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("staff").
		OrderBy("id ASC")

	if onlyBookable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_admin": false})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// Update обновляет профиль сотрудника. Пароль обновляется только если
// передан непустым (поведение формы редактирования в админке).
func (r *Repository) Update(ctx context.Context, member *domain.StaffMember) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("staff").
		Set("name", member.Name).
		Set("username", member.Username).
		Set("photo", member.Photo).
		Set("phone", member.Phone).
		Set("is_admin", member.IsAdmin).
		Set("commission_pct", member.CommissionPct).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": member.ID})

	if member.Password != "" {
		updateBuilder = updateBuilder.Set("password", member.Password)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

// UpdatePassword меняет учетные данные сотрудника
func (r *Repository) UpdatePassword(ctx context.Context, id int64, password string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("staff").
		Set("password", password).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

// Delete удаляет сотрудника. Сетка доступности, записи и ведомость
// удаляются каскадно внешними ключами.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStaffNotFound
	}

	return nil
}

var staffColumns = []string{
	"id",
	"name",
	"username",
	"password",
	"photo",
	"phone",
	"is_admin",
	"commission_pct",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.StaffMember, error) {
	var member domain.StaffMember
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Username,
		&member.Password,
		&member.Photo,
		&member.Phone,
		&member.IsAdmin,
		&member.CommissionPct,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	return &member, nil
}
