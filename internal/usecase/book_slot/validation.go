package book_slot

import (
	"fmt"
	"strings"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
	"github.com/dcastano/Barberia-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса.
// Текст ошибки всегда называет конкретное поле
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Day) == "" {
		return fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	if req.WeekOffset < 0 || req.WeekOffset >= domain.BookableWeeks {
		return fmt.Errorf("%w: weekOffset must be within [0, %d)", ErrInvalidWeekOffset, domain.BookableWeeks)
	}

	if strings.TrimSpace(req.Time) == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLen {
		return fmt.Errorf("%w: clientName must not exceed %d characters", ErrInvalidInput, domain.MaxClientNameLen)
	}

	phone := strings.TrimSpace(req.ClientPhone)
	if phone == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxClientPhoneLen {
		return fmt.Errorf("%w: clientPhone must not exceed %d characters", ErrInvalidInput, domain.MaxClientPhoneLen)
	}

	return nil
}

// parseDay разбирает день недели из запроса
func parseDay(value string) (domain.Weekday, error) {
	day, err := domain.ParseWeekday(value)
	if err != nil {
		return "", fmt.Errorf("%w: unknown day %q", ErrInvalidInput, value)
	}
	return day, nil
}

// parseSlotTime разбирает время слота: канонический "15:04"
// или клиентский "03:04 PM"
func parseSlotTime(value string) (types.TimeOfDay, error) {
	if tod, err := types.ParseTimeOfDay(value); err == nil {
		return tod, nil
	}

	tod, err := types.ParseDisplay(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time %q", ErrInvalidInput, value)
	}
	return tod, nil
}
