package domain

import (
	"time"

	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// SlotState состояние ячейки сетки. Для каждого ключа слота в любой момент
// истинно ровно одно из состояний (инвариант разбиения).
type SlotState string

const (
	// SlotOpen слот материализован и свободен для записи
	SlotOpen SlotState = "open"
	// SlotBlocked слот закрыт администратором
	SlotBlocked SlotState = "blocked"
	// SlotBooked на слот существует запись клиента
	SlotBooked SlotState = "booked"
	// SlotUnmaterialized слот не существует в сетке мастера: "не предлагается".
	// Это отдельное состояние, а не разновидность blocked: клиенту такой слот
	// не показывается как закрытый администратором.
	SlotUnmaterialized SlotState = "unmaterialized"
)

// SlotKey адресуемая единица сетки: мастер + конкретная дата + время.
// Блокировки и записи привязаны к дате (политика per-date): блокировка
// понедельника недели N не затрагивает неделю N+1.
type SlotKey struct {
	StaffID int64
	Date    time.Time // календарная дата слота, время суток нулевое
	Day     Weekday   // денормализовано из Date, для отображения
	Time    types.TimeOfDay
}

// NewSlotKey создает ключ слота, вычисляя день недели из даты
func NewSlotKey(staffID int64, date time.Time, tod types.TimeOfDay) SlotKey {
	return SlotKey{
		StaffID: staffID,
		Date:    date,
		Day:     WeekdayFromTime(date),
		Time:    tod,
	}
}

// AvailabilitySlot строка сетки доступности. Существование строки означает,
// что слот входит в сетку мастера; blocked отличает Open от Blocked.
type AvailabilitySlot struct {
	ID      int64
	StaffID int64
	Date    time.Time
	Day     Weekday
	Time    types.TimeOfDay
	Blocked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key возвращает ключ слота
func (s *AvailabilitySlot) Key() SlotKey {
	return SlotKey{StaffID: s.StaffID, Date: s.Date, Day: s.Day, Time: s.Time}
}

// State возвращает состояние слота на уровне доступности
// (о записях этот слой не знает)
func (s *AvailabilitySlot) State() SlotState {
	if s.Blocked {
		return SlotBlocked
	}
	return SlotOpen
}
