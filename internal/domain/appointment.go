package domain

import (
	"time"

	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// Appointment запись клиента к мастеру на конкретный слот.
// На ключ (staff_id, slot_date, time) существует не больше одной записи -
// уникальный индекс в БД является авторитетной защитой от двойной записи.
type Appointment struct {
	ID      int64
	StaffID int64
	Date    time.Time
	Day     Weekday
	Time    types.TimeOfDay

	ClientName  string
	ClientPhone string

	// Fixed: "постоянный клиент": запись переживает еженедельную
	// массовую очистку released_non_fixed
	Fixed bool

	// ReminderSent выставляется фоновым циклом напоминаний
	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key возвращает ключ слота, занятого записью
func (a *Appointment) Key() SlotKey {
	return SlotKey{StaffID: a.StaffID, Date: a.Date, Day: a.Day, Time: a.Time}
}

// IsReleasable сообщает, попадает ли запись под массовую очистку
func (a *Appointment) IsReleasable() bool {
	return !a.Fixed
}
