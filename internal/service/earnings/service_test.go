package earnings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	staffRepo "github.com/dcastano/Barberia-BookingService/internal/infra/storage/staff"
	"github.com/dcastano/Barberia-BookingService/internal/service/earnings/models"
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
	members map[int64]*domain.StaffMember
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id int64) (*domain.StaffMember, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return m, nil
}

type fakeEarningsRepo struct {
	nextID   int64
	entries  []*domain.EarningEntry
	archived []*domain.WeekEarnings
}

func newFakeEarningsRepo() *fakeEarningsRepo {
	return &fakeEarningsRepo{nextID: 1}
}

func (r *fakeEarningsRepo) AddEntry(ctx context.Context, entry *domain.EarningEntry) (*domain.EarningEntry, error) {
	entry.ID = r.nextID
	entry.CreatedAt = entry.EntryDate
	r.nextID++
	copied := *entry
	r.entries = append(r.entries, &copied)
	return entry, nil
}

func (r *fakeEarningsRepo) inRange(entry *domain.EarningEntry, rng domain.WeekRange) bool {
	return !entry.EntryDate.Before(rng.Start) && entry.EntryDate.Before(rng.End.AddDate(0, 0, 1))
}

func (r *fakeEarningsRepo) ListEntries(ctx context.Context, staffID int64, rng domain.WeekRange) ([]*domain.EarningEntry, error) {
	var out []*domain.EarningEntry
	for _, e := range r.entries {
		if e.StaffID == staffID && r.inRange(e, rng) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEarningsRepo) WeekTotalsBefore(ctx context.Context, cutoff time.Time) ([]*domain.WeekEarnings, error) {
	type weekKey struct {
		staffID   int64
		weekStart string
	}
	totals := map[weekKey]*domain.WeekEarnings{}
	var order []weekKey
	for _, e := range r.entries {
		if !e.EntryDate.Before(cutoff) {
			continue
		}
		weekStart := domain.WeekStart(e.EntryDate, time.UTC)
		key := weekKey{staffID: e.StaffID, weekStart: weekStart.Format(domain.DateFormat)}
		if _, ok := totals[key]; !ok {
			totals[key] = &domain.WeekEarnings{StaffID: e.StaffID, WeekStart: weekStart}
			order = append(order, key)
		}
		totals[key].Total += e.Amount
	}
	out := make([]*domain.WeekEarnings, 0, len(order))
	for _, key := range order {
		out = append(out, totals[key])
	}
	return out, nil
}

func (r *fakeEarningsRepo) ArchiveWeek(ctx context.Context, week *domain.WeekEarnings) error {
	copied := *week
	r.archived = append(r.archived, &copied)
	return nil
}

func (r *fakeEarningsRepo) DeleteEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*domain.EarningEntry
	var deleted int64
	for _, e := range r.entries {
		if e.EntryDate.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return deleted, nil
}

func newTestService() (*Service, *fakeEarningsRepo, *fakeStaffRepo) {
	earningsStore := newFakeEarningsRepo()
	staffStore := &fakeStaffRepo{members: map[int64]*domain.StaffMember{
		1: {ID: 1, Name: "Camilo", Username: "camilo", CommissionPct: 50},
		2: {ID: 2, Name: "Laura", Username: "laura", CommissionPct: 60},
	}}
	svc := NewService(earningsStore, staffStore, fakeTxManager{}, time.UTC, nopLogger{}).
		WithTimeProvider(&fixedTime{now: testNow})
	return svc, earningsStore, staffStore
}

func TestAddEntry_Success(t *testing.T) {
	svc, store, _ := newTestService()

	resp, err := svc.AddEntry(context.Background(), &models.AddEntryRequest{
		StaffID:     1,
		Amount:      25000,
		Description: "corte clasico",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2025-10-15", resp.EntryDate)
	require.Len(t, store.entries, 1)
}

func TestAddEntry_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddEntry(context.Background(), &models.AddEntryRequest{StaffID: 1, Amount: 0, Description: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddEntry(context.Background(), &models.AddEntryRequest{StaffID: 1, Amount: 100, Description: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddEntry(context.Background(), &models.AddEntryRequest{StaffID: 99, Amount: 100, Description: "x"})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestWeekSummary_AppliesCommission(t *testing.T) {
	svc, _, _ := newTestService()

	for _, amount := range []float64{25000, 35000} {
		_, err := svc.AddEntry(context.Background(), &models.AddEntryRequest{
			StaffID:     1,
			Amount:      amount,
			Description: "servicio",
		})
		require.NoError(t, err)
	}

	summary, err := svc.WeekSummary(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", summary.WeekStart)
	assert.Equal(t, float64(60000), summary.Total)
	assert.Equal(t, float64(30000), summary.Commission) // 50%
	assert.Len(t, summary.Entries, 2)
}

func TestWeekSummary_StaffNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.WeekSummary(context.Background(), 99)

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestRollover_ArchivesPreviousWeekOnly(t *testing.T) {
	svc, store, _ := newTestService()

	prevWednesday := testNow.AddDate(0, 0, -7)
	store.entries = append(store.entries,
		&domain.EarningEntry{ID: 10, StaffID: 1, Amount: 40000, Description: "semana pasada", EntryDate: prevWednesday},
		&domain.EarningEntry{ID: 11, StaffID: 2, Amount: 20000, Description: "semana pasada", EntryDate: prevWednesday},
		&domain.EarningEntry{ID: 12, StaffID: 1, Amount: 15000, Description: "semana actual", EntryDate: testNow},
	)
	store.nextID = 13

	resp, err := svc.Rollover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2025-10-06", resp.WeekStart)
	assert.Equal(t, 2, resp.StaffArchived)
	assert.Equal(t, int64(2), resp.EntriesCleared)

	// Текущая неделя остаётся нетронутой
	require.Len(t, store.entries, 1)
	assert.Equal(t, int64(12), store.entries[0].ID)

	require.Len(t, store.archived, 2)
	byStaff := map[int64]*domain.WeekEarnings{}
	for _, w := range store.archived {
		byStaff[w.StaffID] = w
	}
	assert.Equal(t, float64(40000), byStaff[1].Total)
	assert.Equal(t, float64(20000), byStaff[1].Commission) // 50%
	assert.Equal(t, float64(12000), byStaff[2].Commission) // 60%
	assert.Equal(t, "2025-10-06", byStaff[1].WeekStart.Format(domain.DateFormat))
}

// Строки, оставшиеся с недель старше предыдущей (сервис простаивал и
// пропустил смену недели), при ролловере архивируются под своей неделей,
// а не удаляются без следа
func TestRollover_ArchivesSkippedWeeks(t *testing.T) {
	svc, store, _ := newTestService()

	// Две недели назад относительно testNow: неделя с 2025-09-29
	staleDate := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store.entries = append(store.entries,
		&domain.EarningEntry{ID: 10, StaffID: 1, Amount: 30000, Description: "semana perdida", EntryDate: staleDate},
	)

	resp, err := svc.Rollover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.StaffArchived)
	assert.Equal(t, int64(1), resp.EntriesCleared)
	assert.Empty(t, store.entries)

	require.Len(t, store.archived, 1)
	assert.Equal(t, "2025-09-29", store.archived[0].WeekStart.Format(domain.DateFormat))
	assert.Equal(t, float64(30000), store.archived[0].Total)
	assert.Equal(t, float64(15000), store.archived[0].Commission) // 50%
}

// Повторный ролловер той же недели ничего не архивирует повторно
func TestRollover_SecondRunIsNoop(t *testing.T) {
	svc, store, _ := newTestService()

	prevWednesday := testNow.AddDate(0, 0, -7)
	store.entries = append(store.entries,
		&domain.EarningEntry{ID: 10, StaffID: 1, Amount: 40000, Description: "semana pasada", EntryDate: prevWednesday},
	)

	_, err := svc.Rollover(context.Background())
	require.NoError(t, err)

	resp, err := svc.Rollover(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.StaffArchived)
	assert.Zero(t, resp.EntriesCleared)
	assert.Len(t, store.archived, 1)
}

func TestRollover_DeletedStaffArchivedWithZeroShare(t *testing.T) {
	svc, store, staffStore := newTestService()

	prevWednesday := testNow.AddDate(0, 0, -7)
	store.entries = append(store.entries,
		&domain.EarningEntry{ID: 10, StaffID: 7, Amount: 10000, Description: "barbero retirado", EntryDate: prevWednesday},
	)
	delete(staffStore.members, 7)

	resp, err := svc.Rollover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.StaffArchived)
	require.Len(t, store.archived, 1)
	assert.Equal(t, float64(10000), store.archived[0].Total)
	assert.Zero(t, store.archived[0].Commission)
}
