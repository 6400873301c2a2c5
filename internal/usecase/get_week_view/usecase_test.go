package get_week_view

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// Тестовые фейки

type fakeStaffRepo struct {
	members map[int64]*domain.StaffMember
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.StaffMember, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return member, nil
}

type fakeAvailabilityRepo struct {
	slots []*domain.AvailabilitySlot
}

func (f *fakeAvailabilityRepo) inRange(slot *domain.AvailabilitySlot, staffID int64, rng domain.WeekRange) bool {
	return slot.StaffID == staffID && !slot.Date.Before(rng.Start) && !slot.Date.After(rng.End)
}

func (f *fakeAvailabilityRepo) ListOpen(_ context.Context, staffID int64, rng domain.WeekRange) ([]*domain.AvailabilitySlot, error) {
	var out []*domain.AvailabilitySlot
	for _, s := range f.slots {
		if f.inRange(s, staffID, rng) && !s.Blocked {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListBlocked(_ context.Context, staffID int64, rng domain.WeekRange) ([]*domain.AvailabilitySlot, error) {
	var out []*domain.AvailabilitySlot
	for _, s := range f.slots {
		if f.inRange(s, staffID, rng) && s.Blocked {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListByStaff(_ context.Context, staffID int64, rng domain.WeekRange) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.StaffID == staffID && !a.Date.Before(rng.Start) && !a.Date.After(rng.End) {
			out = append(out, a)
		}
	}
	return out, nil
}

// ListTimes повторяет семантику репозитория: объединение времён слотов
// и записей за неделю, отсортированное численно
func (f *fakeAvailabilityRepo) listTimes(appointments *fakeAppointmentRepo, staffID int64, rng domain.WeekRange) []types.TimeOfDay {
	seen := make(map[int]bool)
	for _, s := range f.slots {
		if f.inRange(s, staffID, rng) {
			seen[s.Time.Minutes()] = true
		}
	}
	for _, a := range appointments.appointments {
		if a.StaffID == staffID && !a.Date.Before(rng.Start) && !a.Date.After(rng.End) {
			seen[a.Time.Minutes()] = true
		}
	}
	minutes := make([]int, 0, len(seen))
	for m := range seen {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)
	out := make([]types.TimeOfDay, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, types.TimeOfDay(m))
	}
	return out
}

type unionAvailabilityRepo struct {
	*fakeAvailabilityRepo
	appointments *fakeAppointmentRepo
}

func (u unionAvailabilityRepo) ListTimes(_ context.Context, staffID int64, rng domain.WeekRange) ([]types.TimeOfDay, error) {
	return u.listTimes(u.appointments, staffID, rng), nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// Среда, 15 октября 2025; понедельник недели: 13 октября
var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func mustTime(t *testing.T, value string) types.TimeOfDay {
	t.Helper()
	tod, err := types.ParseTimeOfDay(value)
	require.NoError(t, err)
	return tod
}

func dateFor(t *testing.T, day domain.Weekday) time.Time {
	t.Helper()
	date, err := domain.ResolveDate(testNow, time.UTC, day, 0)
	require.NoError(t, err)
	return date
}

func newTestUseCase(availability *fakeAvailabilityRepo, appointments *fakeAppointmentRepo) *UseCase {
	staff := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		1: {ID: 1, Name: "Camilo", Username: "camilo"},
		2: {ID: 2, Name: "Admin", Username: "admin", IsAdmin: true},
	}}
	return NewUseCase(
		staff,
		unionAvailabilityRepo{fakeAvailabilityRepo: availability, appointments: appointments},
		appointments,
		time.UTC,
		nopLogger{},
	).WithTimeProvider(fixedTime{now: testNow})
}

func slotView(t *testing.T, resp *Response, day domain.Weekday, timeStr string) SlotView {
	t.Helper()
	for _, d := range resp.Days {
		if d.Day != day {
			continue
		}
		for _, s := range d.Slots {
			if s.Time == timeStr {
				return s
			}
		}
	}
	t.Fatalf("slot %s %s not found in response", day, timeStr)
	return SlotView{}
}

func TestGetWeekView_PartitionStates(t *testing.T) {
	tenForty := mustTime(t, "10:40")
	monday := dateFor(t, domain.Monday)
	tuesday := dateFor(t, domain.Tuesday)
	wednesday := dateFor(t, domain.Wednesday)

	availability := &fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
		{StaffID: 1, Date: monday, Day: domain.Monday, Time: tenForty},
		{StaffID: 1, Date: tuesday, Day: domain.Tuesday, Time: tenForty, Blocked: true},
		{StaffID: 1, Date: wednesday, Day: domain.Wednesday, Time: tenForty},
	}}
	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 7, StaffID: 1, Date: wednesday, Day: domain.Wednesday, Time: tenForty, ClientName: "Laura", Fixed: true},
	}}

	uc := newTestUseCase(availability, appointments)
	resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, WeekOffset: 0})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-13", resp.WeekStart)
	require.Len(t, resp.Days, 7)

	// Ровно одно состояние на ячейку
	assert.Equal(t, domain.SlotOpen, slotView(t, resp, domain.Monday, "10:40").State)
	assert.Equal(t, domain.SlotBlocked, slotView(t, resp, domain.Tuesday, "10:40").State)

	booked := slotView(t, resp, domain.Wednesday, "10:40")
	assert.Equal(t, domain.SlotBooked, booked.State)
	require.NotNil(t, booked.AppointmentID)
	assert.Equal(t, int64(7), *booked.AppointmentID)
	require.NotNil(t, booked.ClientName)
	assert.Equal(t, "Laura", *booked.ClientName)
	require.NotNil(t, booked.Fixed)
	assert.True(t, *booked.Fixed)

	// В дни без слота это время не предлагается
	assert.Equal(t, domain.SlotUnmaterialized, slotView(t, resp, domain.Thursday, "10:40").State)
	assert.Equal(t, domain.SlotUnmaterialized, slotView(t, resp, domain.Sunday, "10:40").State)
}

func TestGetWeekView_AppointmentOnlyTimeAppearsInEveryDay(t *testing.T) {
	// Запись на время, которого нет в сетке расписания: строка времени
	// появляется во всей неделе, в остальных днях как unmaterialized
	lateTime := mustTime(t, "21:40")
	friday := dateFor(t, domain.Friday)

	availability := &fakeAvailabilityRepo{}
	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{ID: 3, StaffID: 1, Date: friday, Day: domain.Friday, Time: lateTime, ClientName: "Andres"},
	}}

	uc := newTestUseCase(availability, appointments)
	resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, WeekOffset: 0})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotBooked, slotView(t, resp, domain.Friday, "21:40").State)
	for _, day := range []domain.Weekday{domain.Monday, domain.Tuesday, domain.Saturday} {
		assert.Equal(t, domain.SlotUnmaterialized, slotView(t, resp, day, "21:40").State)
	}
}

func TestGetWeekView_TimesSortedNumerically(t *testing.T) {
	// "10:00 AM" должен идти раньше "09:00 PM": сортировка по минутам,
	// а не по строковому представлению
	morning := mustTime(t, "10:00")
	evening := mustTime(t, "21:00")
	monday := dateFor(t, domain.Monday)

	availability := &fakeAvailabilityRepo{slots: []*domain.AvailabilitySlot{
		{StaffID: 1, Date: monday, Day: domain.Monday, Time: evening},
		{StaffID: 1, Date: monday, Day: domain.Monday, Time: morning},
	}}

	uc := newTestUseCase(availability, &fakeAppointmentRepo{})
	resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, WeekOffset: 0})
	require.NoError(t, err)

	mondayView := resp.Days[0]
	require.Len(t, mondayView.Slots, 2)
	assert.Equal(t, "10:00", mondayView.Slots[0].Time)
	assert.Equal(t, "10:00 AM", mondayView.Slots[0].Display)
	assert.Equal(t, "21:00", mondayView.Slots[1].Time)
	assert.Equal(t, "09:00 PM", mondayView.Slots[1].Display)
}

func TestGetWeekView_EmptyWeek(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{})

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 1, WeekOffset: 1})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-20", resp.WeekStart)
	require.Len(t, resp.Days, 7)
	for _, day := range resp.Days {
		assert.Empty(t, day.Slots)
	}
}

func TestGetWeekView_Errors(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeAppointmentRepo{})

	_, err := uc.Execute(context.Background(), &Request{StaffID: 99, WeekOffset: 0})
	assert.ErrorIs(t, err, ErrStaffNotFound)

	_, err = uc.Execute(context.Background(), &Request{StaffID: 2, WeekOffset: 0})
	assert.ErrorIs(t, err, ErrStaffNotBookable)

	_, err = uc.Execute(context.Background(), &Request{StaffID: 1, WeekOffset: domain.BookableWeeks})
	assert.ErrorIs(t, err, ErrInvalidWeekOffset)

	_, err = uc.Execute(context.Background(), &Request{StaffID: 1, WeekOffset: -1})
	assert.ErrorIs(t, err, ErrInvalidWeekOffset)
}
