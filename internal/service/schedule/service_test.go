package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	appointmentRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/availability"
	"github.com/dcastano/Barberia-BookingService/internal/service/schedule/models"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// Тестовые фейки

type cellKey struct {
	staffID int64
	date    string
	minutes int
}

func cellOf(key domain.SlotKey) cellKey {
	return cellKey{staffID: key.StaffID, date: key.Date.Format(domain.DateFormat), minutes: key.Time.Minutes()}
}

type fakeAvailabilityRepo struct {
	slots map[cellKey]*domain.AvailabilitySlot
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{slots: make(map[cellKey]*domain.AvailabilitySlot)}
}

func (f *fakeAvailabilityRepo) upsert(key domain.SlotKey, blocked bool) {
	f.slots[cellOf(key)] = &domain.AvailabilitySlot{
		StaffID: key.StaffID, Date: key.Date, Day: key.Day, Time: key.Time, Blocked: blocked,
	}
}

func (f *fakeAvailabilityRepo) Block(_ context.Context, key domain.SlotKey) error {
	f.upsert(key, true)
	return nil
}

func (f *fakeAvailabilityRepo) Unblock(_ context.Context, key domain.SlotKey) error {
	f.upsert(key, false)
	return nil
}

func (f *fakeAvailabilityRepo) GetByKey(_ context.Context, key domain.SlotKey) (*domain.AvailabilitySlot, error) {
	slot, ok := f.slots[cellOf(key)]
	if !ok {
		return nil, availabilityRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (f *fakeAvailabilityRepo) UpsertOpenByTime(_ context.Context, staffIDs []int64, dates []time.Time, tod types.TimeOfDay) error {
	for _, id := range staffIDs {
		for _, date := range dates {
			f.upsert(domain.NewSlotKey(id, date, tod), false)
		}
	}
	return nil
}

func (f *fakeAvailabilityRepo) DeleteByTime(_ context.Context, staffIDs []int64, dates []time.Time, tod types.TimeOfDay) (int64, error) {
	var deleted int64
	for _, id := range staffIDs {
		for _, date := range dates {
			key := cellOf(domain.NewSlotKey(id, date, tod))
			if _, ok := f.slots[key]; ok {
				delete(f.slots, key)
				deleted++
			}
		}
	}
	return deleted, nil
}

type fakeAppointmentRepo struct {
	nextID int64
	byID   map[int64]*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{nextID: 1, byID: make(map[int64]*domain.Appointment)}
}

func (f *fakeAppointmentRepo) add(appt domain.Appointment) *domain.Appointment {
	appt.ID = f.nextID
	f.nextID++
	f.byID[appt.ID] = &appt
	return &appt
}

func (f *fakeAppointmentRepo) GetByKey(_ context.Context, key domain.SlotKey) (*domain.Appointment, error) {
	for _, appt := range f.byID {
		if cellOf(appt.Key()) == cellOf(key) {
			return appt, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) DeleteByKey(_ context.Context, key domain.SlotKey) error {
	for id, appt := range f.byID {
		if cellOf(appt.Key()) == cellOf(key) {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) ToggleFixed(_ context.Context, id int64) (bool, error) {
	appt, ok := f.byID[id]
	if !ok {
		return false, appointmentRepo.ErrAppointmentNotFound
	}
	appt.Fixed = !appt.Fixed
	return appt.Fixed, nil
}

func (f *fakeAppointmentRepo) ListNonFixed(_ context.Context, staffID int64) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range f.byID {
		if appt.StaffID == staffID && !appt.Fixed {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) DeleteNonFixed(_ context.Context, staffID int64) (int64, error) {
	var deleted int64
	for id, appt := range f.byID {
		if appt.StaffID == staffID && !appt.Fixed {
			delete(f.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeStaffRepo struct {
	ids []int64
}

func (f *fakeStaffRepo) ListIDs(_ context.Context, _ bool) ([]int64, error) {
	return f.ids, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// Среда, 15 октября 2025
var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *fakeAvailabilityRepo, *fakeAppointmentRepo) {
	availability := newFakeAvailabilityRepo()
	appointments := newFakeAppointmentRepo()
	staff := &fakeStaffRepo{ids: []int64{1, 2}}

	svc := NewService(availability, appointments, staff, fakeTxManager{}, time.UTC, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
	return svc, availability, appointments
}

func mustTime(t *testing.T, value string) types.TimeOfDay {
	t.Helper()
	tod, err := types.ParseTimeOfDay(value)
	require.NoError(t, err)
	return tod
}

func TestBlockUnblockRoundTrip(t *testing.T) {
	svc, availability, _ := newTestService()

	req := &models.SlotRequest{StaffID: 1, Day: "friday", WeekOffset: 0, Time: "10:40"}
	key, err := req.ToSlotKey(testNow, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-17", key.Date.Format(domain.DateFormat))

	require.NoError(t, svc.BlockSlot(context.Background(), req))
	slot, err := availability.GetByKey(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, slot.Blocked)

	require.NoError(t, svc.UnblockSlot(context.Background(), req))
	slot, err = availability.GetByKey(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, slot.Blocked)
}

func TestBlockSlot_RejectsBookedSlot(t *testing.T) {
	svc, _, appointments := newTestService()

	date, _ := time.Parse(domain.DateFormat, "2025-10-17")
	appointments.add(domain.Appointment{
		StaffID: 1, Date: date, Day: domain.Friday, Time: mustTime(t, "10:40"), ClientName: "Laura",
	})

	err := svc.BlockSlot(context.Background(), &models.SlotRequest{StaffID: 1, Day: "friday", Time: "10:40"})
	assert.ErrorIs(t, err, ErrSlotBooked)
}

func TestBlockSlot_InvalidReference(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.BlockSlot(context.Background(), &models.SlotRequest{StaffID: 1, Day: "viernes", Time: "10:40"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.BlockSlot(context.Background(), &models.SlotRequest{StaffID: 1, Day: "friday", WeekOffset: 5, Time: "10:40"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.BlockSlot(context.Background(), &models.SlotRequest{StaffID: 1, Day: "friday", Time: "25:99"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancelAppointment_Idempotent(t *testing.T) {
	svc, _, appointments := newTestService()

	date, _ := time.Parse(domain.DateFormat, "2025-10-17")
	appointments.add(domain.Appointment{
		StaffID: 1, Date: date, Day: domain.Friday, Time: mustTime(t, "10:40"), ClientName: "Laura",
	})

	req := &models.SlotRequest{StaffID: 1, Day: "friday", WeekOffset: 0, Time: "10:40"}
	require.NoError(t, svc.CancelAppointment(context.Background(), req))
	assert.Empty(t, appointments.byID)

	// Повторная отмена не является ошибкой
	require.NoError(t, svc.CancelAppointment(context.Background(), req))
}

func TestToggleFixed_Twice(t *testing.T) {
	svc, _, appointments := newTestService()

	date, _ := time.Parse(domain.DateFormat, "2025-10-17")
	appt := appointments.add(domain.Appointment{
		StaffID: 1, Date: date, Day: domain.Friday, Time: mustTime(t, "10:40"), ClientName: "Laura",
	})

	resp, err := svc.ToggleFixed(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.True(t, resp.Fixed)

	resp, err = svc.ToggleFixed(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.False(t, resp.Fixed)

	_, err = svc.ToggleFixed(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestReleaseNonFixed_KeepsFixedAppointments(t *testing.T) {
	svc, availability, appointments := newTestService()

	date, _ := time.Parse(domain.DateFormat, "2025-10-17")
	appointments.add(domain.Appointment{
		StaffID: 1, Date: date, Day: domain.Friday, Time: mustTime(t, "10:40"), ClientName: "Laura",
	})
	fixed := appointments.add(domain.Appointment{
		StaffID: 1, Date: date, Day: domain.Friday, Time: mustTime(t, "11:20"), ClientName: "Andres", Fixed: true,
	})
	otherStaff := appointments.add(domain.Appointment{
		StaffID: 2, Date: date, Day: domain.Friday, Time: mustTime(t, "10:40"), ClientName: "Sofia",
	})

	resp, err := svc.ReleaseNonFixed(context.Background(), &models.ReleaseRequest{StaffID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Released)

	// Закреплённая запись и чужой мастер не тронуты
	assert.Contains(t, appointments.byID, fixed.ID)
	assert.Contains(t, appointments.byID, otherStaff.ID)
	assert.Len(t, appointments.byID, 2)

	// Освобождённый слот снова открыт
	slot, err := availability.GetByKey(context.Background(), domain.NewSlotKey(1, date, mustTime(t, "10:40")))
	require.NoError(t, err)
	assert.False(t, slot.Blocked)
}

func TestManageGlobalShift_AddAndRemove(t *testing.T) {
	svc, availability, _ := newTestService()

	resp, err := svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{
		Action: models.ShiftActionAdd,
		Time:   "8:40 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, "20:40", resp.Time)
	assert.Equal(t, models.ShiftAllDays, resp.Day)
	assert.Equal(t, 2, resp.StaffAffected)
	// 2 мастера x 14 дней горизонта
	assert.Len(t, availability.slots, 28)

	resp, err = svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{
		Action: models.ShiftActionRemove,
		Time:   "20:40",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(28), resp.SlotsAffected)
	assert.Empty(t, availability.slots)
}

func TestManageGlobalShift_SingleDayScope(t *testing.T) {
	svc, availability, _ := newTestService()

	resp, err := svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{
		Action: models.ShiftActionAdd,
		Day:    "friday",
		Time:   "20:40",
	})
	require.NoError(t, err)
	assert.Equal(t, "friday", resp.Day)
	// 2 мастера x 2 пятницы горизонта
	assert.Equal(t, int64(4), resp.SlotsAffected)
	assert.Len(t, availability.slots, 4)

	fridays := []string{"2025-10-17", "2025-10-24"}
	for _, d := range fridays {
		date, err := time.Parse(domain.DateFormat, d)
		require.NoError(t, err)
		_, err = availability.GetByKey(context.Background(), domain.NewSlotKey(1, date, mustTime(t, "20:40")))
		assert.NoError(t, err, d)
	}

	// Удаление с другим днём недели ничего не затрагивает
	resp, err = svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{
		Action: models.ShiftActionRemove,
		Day:    "monday",
		Time:   "20:40",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.SlotsAffected)
	assert.Len(t, availability.slots, 4)

	resp, err = svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{
		Action: models.ShiftActionRemove,
		Day:    "friday",
		Time:   "20:40",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.SlotsAffected)
	assert.Empty(t, availability.slots)
}

func TestManageGlobalShift_Errors(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{Action: "toggle", Time: "10:40"})
	assert.ErrorIs(t, err, ErrInvalidShiftAction)

	_, err = svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{Action: models.ShiftActionAdd, Time: "later"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ManageGlobalShift(context.Background(), &models.GlobalShiftRequest{Action: models.ShiftActionAdd, Day: "someday", Time: "10:40"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
