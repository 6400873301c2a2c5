package get_week_view

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrStaffNotBookable возвращается для сотрудника без сетки записи
	ErrStaffNotBookable = errors.New("staff member does not take appointments")

	// ErrInvalidWeekOffset возвращается, когда неделя вне горизонта записи
	ErrInvalidWeekOffset = errors.New("week offset is outside the booking horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
