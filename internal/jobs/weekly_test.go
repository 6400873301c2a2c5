package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	earningsModels "github.com/dcastano/Barberia-BookingService/internal/service/earnings/models"
)

type fakeStaffRepo struct {
	ids []int64
}

func (f *fakeStaffRepo) ListIDs(_ context.Context, _ bool) ([]int64, error) {
	return f.ids, nil
}

type fakeStaffService struct {
	materialized []time.Time
}

func (f *fakeStaffService) MaterializeWeekForAll(_ context.Context, _ []int64, weekStart time.Time) error {
	f.materialized = append(f.materialized, weekStart)
	return nil
}

type fakeEarningsService struct {
	rollovers int
}

func (f *fakeEarningsService) Rollover(_ context.Context) (*earningsModels.RolloverResponse, error) {
	f.rollovers++
	return &earningsModels.RolloverResponse{}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

func TestWeeklyJob_RolloverRunsOnFirstPass(t *testing.T) {
	staffService := &fakeStaffService{}
	earningsService := &fakeEarningsService{}
	clock := &fixedTime{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}

	job := NewWeeklyJob(&fakeStaffRepo{ids: []int64{1}}, staffService, earningsService, time.Hour, time.UTC, nopLogger{}).
		WithTimeProvider(clock)

	// Первый проход после запуска сервиса: сетка материализуется
	// и ведомость проводится, даже если смена недели случилась в простое
	job.RunOnce(context.Background())
	assert.Equal(t, 1, earningsService.rollovers)
	require.Len(t, staffService.materialized, 2)
	assert.Equal(t, "2025-10-13", staffService.materialized[0].Format("2006-01-02"))
	assert.Equal(t, "2025-10-20", staffService.materialized[1].Format("2006-01-02"))

	// Повторные проходы внутри той же недели ничего не делают
	clock.now = clock.now.AddDate(0, 0, 1)
	job.RunOnce(context.Background())
	assert.Equal(t, 1, earningsService.rollovers)

	// Следующий понедельник: новая неделя обрабатывается снова
	clock.now = time.Date(2025, 10, 20, 0, 30, 0, 0, time.UTC)
	job.RunOnce(context.Background())
	assert.Equal(t, 2, earningsService.rollovers)
	assert.Len(t, staffService.materialized, 4)
}
