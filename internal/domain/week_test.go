package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	loc := time.UTC

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			// Среда -> понедельник той же недели
			name: "midweek",
			now:  time.Date(2025, 10, 15, 14, 30, 0, 0, loc),
			want: "2025-10-13",
		},
		{
			// Понедельник остается понедельником
			name: "monday itself",
			now:  time.Date(2025, 10, 13, 0, 5, 0, 0, loc),
			want: "2025-10-13",
		},
		{
			// Воскресенье относится к неделе, начавшейся 6 дней назад
			name: "sunday",
			now:  time.Date(2025, 10, 19, 23, 59, 0, 0, loc),
			want: "2025-10-13",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeekStart(tc.now, loc)
			assert.Equal(t, tc.want, got.Format(DateFormat))
			assert.Zero(t, got.Hour())
		})
	}
}

func TestResolveDate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, loc) // среда

	date, err := ResolveDate(now, loc, Monday, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", date.Format(DateFormat))

	date, err = ResolveDate(now, loc, Friday, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-17", date.Format(DateFormat))

	date, err = ResolveDate(now, loc, Monday, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-20", date.Format(DateFormat))

	_, err = ResolveDate(now, loc, Monday, -1)
	assert.Error(t, err)

	_, err = ResolveDate(now, loc, Weekday("someday"), 0)
	assert.Error(t, err)
}

func TestResolveDate_ConsistentWithinDay(t *testing.T) {
	loc := time.UTC

	// Два вызова в разное время одного и того же дня дают одну дату
	morning := time.Date(2025, 10, 16, 8, 0, 0, 0, loc)
	evening := time.Date(2025, 10, 16, 22, 45, 0, 0, loc)

	first, err := ResolveDate(morning, loc, Saturday, 1)
	require.NoError(t, err)
	second, err := ResolveDate(evening, loc, Saturday, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveWeekRange(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, loc)

	rng, err := ResolveWeekRange(now, loc, 0)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", rng.Start.Format(DateFormat))
	assert.Equal(t, "2025-10-19", rng.End.Format(DateFormat))

	next, err := ResolveWeekRange(now, loc, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-20", next.Start.Format(DateFormat))

	_, err = ResolveWeekRange(now, loc, -2)
	assert.Error(t, err)
}

func TestWeekdayFromTime(t *testing.T) {
	assert.Equal(t, Monday, WeekdayFromTime(time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayFromTime(time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)))
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday(" Friday ")
	require.NoError(t, err)
	assert.Equal(t, Friday, day)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}
