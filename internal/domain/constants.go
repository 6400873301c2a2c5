package domain

import "github.com/dcastano/Barberia-BookingService/pkg/types"

// Default grid values. Рабочая сетка барбершопа по умолчанию:
// с 10:00 до 21:00 с шагом 40 минут (17 слотов в день)
const (
	DefaultOpenMinutes  = 10 * 60 // 10:00
	DefaultCloseMinutes = 21 * 60 // 21:00
	DefaultSlotStep     = 40
)

// DefaultOpenTime время открытия по умолчанию
var DefaultOpenTime = types.TimeOfDay(DefaultOpenMinutes)

// DefaultCloseTime время закрытия по умолчанию
var DefaultCloseTime = types.TimeOfDay(DefaultCloseMinutes)

// Business validation constants
const (
	MinSlotStepMinutes = 5
	MaxSlotStepMinutes = 240
	MaxClientNameLen   = 100
	MaxClientPhoneLen  = 30
)

// BookableWeeks горизонт бронирования: текущая неделя и следующая.
// week_offset клиента обязан лежать в [0, BookableWeeks).
const BookableWeeks = 2

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
