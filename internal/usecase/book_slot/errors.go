package book_slot

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrStaffNotBookable возвращается для сотрудника без сетки записи
	ErrStaffNotBookable = errors.New("staff member does not take appointments")

	// ErrSlotTaken возвращается, когда слот уже занят другой записью
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrSlotBlocked возвращается, когда слот закрыт администратором
	ErrSlotBlocked = errors.New("slot is blocked")

	// ErrSlotNotOffered возвращается, когда времени нет в сетке мастера
	// на эту дату
	ErrSlotNotOffered = errors.New("slot is not offered on this date")

	// ErrInvalidWeekOffset возвращается, когда неделя вне горизонта записи
	ErrInvalidWeekOffset = errors.New("week offset is outside the booking horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
