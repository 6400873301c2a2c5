package book_slot

import (
	bookSlot "github.com/dcastano/Barberia-BookingService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	StaffID     int64  `json:"staffId"`
	Day         string `json:"day"`        // "monday" .. "sunday"
	WeekOffset  int    `json:"weekOffset"` // 0: текущая неделя, 1: следующая
	Time        string `json:"time"`       // "10:40" или "10:40 AM"
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSlotRequest) ToUseCaseRequest() *bookSlot.Request {
	return &bookSlot.Request{
		StaffID:     r.StaffID,
		Day:         r.Day,
		WeekOffset:  r.WeekOffset,
		Time:        r.Time,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
	}
}
