package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		StaffID:     1,
		Date:        time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		Day:         domain.Friday,
		Time:        types.TimeOfDay(640), // 10:40
		ClientName:  "Laura",
		ClientPhone: "+573001112233",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newMockRepository(t)
	appt := testAppointment()

	createdAt := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(
			appt.StaffID,
			appt.Date,
			appt.Day,
			appt.Time,
			appt.ClientName,
			appt.ClientPhone,
			appt.Fixed,
			appt.ReminderSent,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), createdAt, createdAt))

	created, err := repo.Create(context.Background(), appt)

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationMapsToSlotTaken(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Конкурентная вставка на тот же ключ: уникальный индекс
	// (staff_id, slot_date, time_minutes) отклоняет вторую запись
	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uniq_appointment_slot"})

	_, err := repo.Create(context.Background(), testAppointment())

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByKey_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT .+ FROM appointments").
		WillReturnError(sql.ErrNoRows)

	key := testAppointment().Key()
	_, err := repo.GetByKey(context.Background(), key)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleFixed_ReturnsNewValue(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE appointments SET fixed = NOT fixed").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"fixed"}).AddRow(true))

	fixed, err := repo.ToggleFixed(context.Background(), 42)

	require.NoError(t, err)
	assert.True(t, fixed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleFixed_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE appointments SET fixed = NOT fixed").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ToggleFixed(context.Background(), 99)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByKey_MissingRowIsNoop(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("DELETE FROM appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByKey(context.Background(), testAppointment().Key())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReminderSent_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("UPDATE appointments SET reminder_sent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkReminderSent(context.Background(), 7)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
