package models

import (
	"errors"
	"strings"
	"time"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

var (
	// ErrInvalidDay возвращается при некорректном дне недели
	ErrInvalidDay = errors.New("invalid weekday")

	// ErrInvalidWeekOffset возвращается, когда неделя вне горизонта записи
	ErrInvalidWeekOffset = errors.New("week offset outside booking horizon")

	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("invalid time format")
)

// Действия глобального сдвига расписания
const (
	ShiftActionAdd    = "add"
	ShiftActionRemove = "remove"
)

// ShiftAllDays применяет глобальный сдвиг ко всем дням недели
const ShiftAllDays = "all"

// Request модели

// SlotRequest ссылка на слот расписания мастера: день недели и смещение
// недели внутри горизонта записи, как при бронировании
type SlotRequest struct {
	StaffID    int64  `json:"staffId"`
	Day        string `json:"day"`        // "monday" ... "sunday"
	WeekOffset int    `json:"weekOffset"` // 0: текущая неделя, 1: следующая
	Time       string `json:"time"`       // "10:40" или "10:40 AM"
}

// ToSlotKey разрешает ссылку в доменный ключ слота с конкретной датой
func (r *SlotRequest) ToSlotKey(now time.Time, loc *time.Location) (domain.SlotKey, error) {
	day, err := domain.ParseWeekday(r.Day)
	if err != nil {
		return domain.SlotKey{}, ErrInvalidDay
	}

	if r.WeekOffset < 0 || r.WeekOffset >= domain.BookableWeeks {
		return domain.SlotKey{}, ErrInvalidWeekOffset
	}

	date, err := domain.ResolveDate(now, loc, day, r.WeekOffset)
	if err != nil {
		return domain.SlotKey{}, ErrInvalidWeekOffset
	}

	tod, err := ParseSlotTime(r.Time)
	if err != nil {
		return domain.SlotKey{}, err
	}

	return domain.NewSlotKey(r.StaffID, date, tod), nil
}

// GlobalShiftRequest запрос на глобальное изменение сетки:
// добавить или убрать время у всех записываемых мастеров.
// Пустой день равносилен "all" - изменение по всем дням недели
type GlobalShiftRequest struct {
	Action string `json:"action"` // "add" или "remove"
	Day    string `json:"day"`    // "all" или "monday" ... "sunday"
	Time   string `json:"time"`   // "08:40" или "8:40 PM"
}

// ReleaseRequest запрос на освобождение незакреплённых записей мастера
type ReleaseRequest struct {
	StaffID int64 `json:"staffId"`
}

// Response модели

// ReleaseResponse результат освобождения незакреплённых записей
type ReleaseResponse struct {
	StaffID  int64 `json:"staffId"`
	Released int64 `json:"released"`
}

// GlobalShiftResponse результат глобального изменения сетки
type GlobalShiftResponse struct {
	Action        string `json:"action"`
	Day           string `json:"day"`
	Time          string `json:"time"`
	StaffAffected int    `json:"staffAffected"`
	SlotsAffected int64  `json:"slotsAffected"`
}

// ToggleFixedResponse результат переключения закрепления записи
type ToggleFixedResponse struct {
	AppointmentID int64 `json:"appointmentId"`
	Fixed         bool  `json:"fixed"`
}

// ParseSlotTime разбирает время слота: принимает и канонический формат
// "15:04", и клиентский "03:04 PM" (в любом регистре)
func ParseSlotTime(value string) (types.TimeOfDay, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidTime
	}

	if tod, err := types.ParseTimeOfDay(value); err == nil {
		return tod, nil
	}

	tod, err := types.ParseDisplay(value)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return tod, nil
}
