package get_week_view

import (
	"fmt"

	"github.com/dcastano/Barberia-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.WeekOffset < 0 || req.WeekOffset >= domain.BookableWeeks {
		return fmt.Errorf("%w: weekOffset must be within [0, %d)", ErrInvalidWeekOffset, domain.BookableWeeks)
	}

	return nil
}
