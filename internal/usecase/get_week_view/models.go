package get_week_view

import (
	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// Request модель запроса недельного расписания мастера
type Request struct {
	StaffID    int64 // ID мастера
	WeekOffset int   // 0: текущая неделя, 1: следующая
}

// Response недельное расписание мастера
type Response struct {
	StaffID    int64     `json:"staffId"`
	StaffName  string    `json:"staffName"`
	WeekOffset int       `json:"weekOffset"`
	WeekStart  string    `json:"weekStart"` // "2025-10-13"
	Days       []DayView `json:"days"`
}

// DayView один день недели со всеми временами сетки
type DayView struct {
	Day   domain.Weekday `json:"day"`
	Date  string         `json:"date"` // "2025-10-15"
	Slots []SlotView     `json:"slots"`
}

// SlotView состояние одного времени в конкретный день.
// Для занятого слота заполняются данные записи
type SlotView struct {
	Time          string           `json:"time"`    // "10:40"
	Display       string           `json:"display"` // "10:40 AM"
	State         domain.SlotState `json:"state"`
	AppointmentID *int64           `json:"appointmentId,omitempty"`
	ClientName    *string          `json:"clientName,omitempty"`
	Fixed         *bool            `json:"fixed,omitempty"`
}
