package domain

import (
	"fmt"
	"time"
)

// WeekStart возвращает понедельник текущей реальной недели в часовом
// поясе салона. Время суток обнуляется, поэтому в пределах одного
// календарного дня результат стабилен между вызовами.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	// time.Weekday: воскресенье = 0, а наша неделя начинается с понедельника
	offset := (int(local.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// ResolveDate переводит пару (день недели, смещение недели) в конкретную
// календарную дату. Смещение 0: текущая неделя, 1: следующая; границы
// недели привязаны к понедельнику текущей недели независимо от того,
// какой сегодня день.
func ResolveDate(now time.Time, loc *time.Location, day Weekday, weekOffset int) (time.Time, error) {
	if weekOffset < 0 {
		return time.Time{}, fmt.Errorf("week offset must not be negative: %d", weekOffset)
	}
	idx := day.Index()
	if idx < 0 {
		return time.Time{}, fmt.Errorf("unknown weekday: %q", day)
	}

	return WeekStart(now, loc).AddDate(0, 0, weekOffset*7+idx), nil
}

// WeekRange диапазон дат одной календарной недели [Start, End]
type WeekRange struct {
	Start time.Time // понедельник
	End   time.Time // воскресенье
}

// ResolveWeekRange возвращает диапазон дат недели для заданного смещения
func ResolveWeekRange(now time.Time, loc *time.Location, weekOffset int) (WeekRange, error) {
	if weekOffset < 0 {
		return WeekRange{}, fmt.Errorf("week offset must not be negative: %d", weekOffset)
	}
	start := WeekStart(now, loc).AddDate(0, 0, weekOffset*7)
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}, nil
}
