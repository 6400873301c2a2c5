package book_slot

import (
	"time"
)

// Request модель запроса на запись клиента
// Слот адресуется парой (день недели, смещение недели) и временем
type Request struct {
	StaffID     int64
	Day         string // "monday" .. "sunday"
	WeekOffset  int    // 0: текущая неделя, 1: следующая
	Time        string // "10:40" или "10:40 AM"
	ClientName  string
	ClientPhone string
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64     `json:"id"`
	StaffID     int64     `json:"staffId"`
	StaffName   string    `json:"staffName"`
	Date        string    `json:"date"` // "2025-10-15"
	Day         string    `json:"day"`
	Time        string    `json:"time"`    // "10:40"
	Display     string    `json:"display"` // "10:40 AM"
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	Fixed       bool      `json:"fixed"`
	CreatedAt   time.Time `json:"createdAt"`
}
