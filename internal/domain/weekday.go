package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday день недели в расписании. Неделя начинается с понедельника.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekDays все дни недели в порядке отображения (понедельник первый)
var WeekDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday парсит день недели из строки запроса
func ParseWeekday(s string) (Weekday, error) {
	day := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range WeekDays {
		if d == day {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday: %q", s)
}

// WeekdayFromTime возвращает день недели для календарной даты
func WeekdayFromTime(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Index возвращает позицию дня внутри недели (понедельник = 0)
func (d Weekday) Index() int {
	for i, day := range WeekDays {
		if day == d {
			return i
		}
	}
	return -1
}

// String возвращает строковое представление дня
func (d Weekday) String() string {
	return string(d)
}
