package staff

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
	"github.com/dcastano/Barberia-BookingService/internal/service/staff/models"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// Среда 2025-10-15, начало недели: понедельник 2025-10-13
var testNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStaffRepo struct {
	nextID  int64
	members map[int64]*domain.StaffMember
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{nextID: 1, members: map[int64]*domain.StaffMember{}}
}

func (r *fakeStaffRepo) Create(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error) {
	for _, m := range r.members {
		if m.Username == member.Username {
			return nil, staffRepo.ErrUsernameTaken
		}
	}
	member.ID = r.nextID
	member.CreatedAt = testNow
	r.nextID++
	copied := *member
	r.members[member.ID] = &copied
	return member, nil
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeStaffRepo) GetByUsername(ctx context.Context, username string) (*domain.StaffMember, error) {
	for _, m := range r.members {
		if m.Username == username {
			copied := *m
			return &copied, nil
		}
	}
	return nil, staffRepo.ErrStaffNotFound
}

func (r *fakeStaffRepo) List(ctx context.Context, onlyBookable bool) ([]*domain.StaffMember, error) {
	var out []*domain.StaffMember
	for _, m := range r.members {
		if onlyBookable && !m.IsBookable() {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, member *domain.StaffMember) error {
	if _, ok := r.members[member.ID]; !ok {
		return staffRepo.ErrStaffNotFound
	}
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeStaffRepo) UpdatePassword(ctx context.Context, id int64, password string) error {
	m, ok := r.members[id]
	if !ok {
		return staffRepo.ErrStaffNotFound
	}
	m.Password = password
	return nil
}

func (r *fakeStaffRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.members[id]; !ok {
		return staffRepo.ErrStaffNotFound
	}
	delete(r.members, id)
	return nil
}

type fakeAvailabilityRepo struct {
	// ключ "staffID|date|minutes"
	slots map[string]bool
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{slots: map[string]bool{}}
}

func slotCellKey(staffID int64, date time.Time, t types.TimeOfDay) string {
	return fmt.Sprintf("%d|%s|%d", staffID, date.Format(domain.DateFormat), t.Minutes())
}

func (r *fakeAvailabilityRepo) MaterializeWeek(ctx context.Context, staffID int64, weekStart time.Time, grid []types.TimeOfDay) error {
	for dayIdx := range domain.WeekDays {
		date := weekStart.AddDate(0, 0, dayIdx)
		for _, t := range grid {
			r.slots[slotCellKey(staffID, date, t)] = true
		}
	}
	return nil
}

func (r *fakeAvailabilityRepo) DeleteByStaff(ctx context.Context, staffID int64) error {
	prefix := fmt.Sprintf("%d|", staffID)
	for key := range r.slots {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(r.slots, key)
		}
	}
	return nil
}

func newTestService() (*Service, *fakeStaffRepo, *fakeAvailabilityRepo) {
	staffStore := newFakeStaffRepo()
	availability := newFakeAvailabilityRepo()
	grid := GridConfig{Open: domain.DefaultOpenTime, Close: domain.DefaultCloseTime, Step: domain.DefaultSlotStep}
	svc := NewService(staffStore, availability, fakeTxManager{}, time.UTC, grid, nopLogger{}).
		WithTimeProvider(&fixedTime{now: testNow})
	return svc, staffStore, availability
}

func createRequest() *models.CreateStaffRequest {
	return &models.CreateStaffRequest{
		Name:          "Camilo",
		Username:      "camilo",
		Password:      "secret",
		CommissionPct: 50,
	}
}

func TestCreate_MaterializesGridForHorizon(t *testing.T) {
	svc, _, availability := newTestService()

	resp, err := svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, "Camilo", resp.Name)
	assert.False(t, resp.IsAdmin)

	// 17 слотов в день, 7 дней, 2 недели горизонта
	assert.Len(t, availability.slots, 17*7*domain.BookableWeeks)

	// Первый слот понедельника текущей недели материализован
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	assert.True(t, availability.slots[slotCellKey(resp.ID, monday, domain.DefaultOpenTime)])

	// Последний слот воскресенья следующей недели материализован
	nextSunday := monday.AddDate(0, 0, 13)
	lastSlot := types.TimeOfDay(20*60 + 40) // 20:40, последний слот сетки
	assert.True(t, availability.slots[slotCellKey(resp.ID, nextSunday, lastSlot)])
}

func TestCreate_AdminGetsNoGrid(t *testing.T) {
	svc, _, availability := newTestService()

	req := createRequest()
	req.Username = "admin"
	req.IsAdmin = true

	resp, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Empty(t, availability.slots)
}

func TestCreate_UsernameTaken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.CreateStaffRequest)
	}{
		{"empty name", func(r *models.CreateStaffRequest) { r.Name = " " }},
		{"empty username", func(r *models.CreateStaffRequest) { r.Username = "" }},
		{"empty password", func(r *models.CreateStaffRequest) { r.Password = "" }},
		{"commission above 100", func(r *models.CreateStaffRequest) { r.CommissionPct = 101 }},
		{"negative commission", func(r *models.CreateStaffRequest) { r.CommissionPct = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_EmptyPasswordKeepsCurrent(t *testing.T) {
	svc, staffStore, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), &models.UpdateStaffRequest{
		ID:            created.ID,
		Name:          "Camilo R.",
		Username:      "camilo",
		CommissionPct: 60,
	})
	require.NoError(t, err)

	stored := staffStore.members[created.ID]
	assert.Equal(t, "Camilo R.", stored.Name)
	assert.Equal(t, "secret", stored.Password)
	assert.Equal(t, float64(60), stored.CommissionPct)
}

func TestDelete_RemovesSchedule(t *testing.T) {
	svc, _, availability := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	require.NotEmpty(t, availability.slots)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	assert.Empty(t, availability.slots)
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrStaffNotFound)
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	resp, err := svc.Authenticate(context.Background(), &models.AuthRequest{Username: "camilo", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	_, err = svc.Authenticate(context.Background(), &models.AuthRequest{Username: "camilo", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), &models.AuthRequest{Username: "ghost", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
