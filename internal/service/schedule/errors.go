package schedule

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не материализован в расписании
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotBooked возвращается при попытке заблокировать занятый слот
	ErrSlotBooked = errors.New("slot has an appointment")

	// ErrAppointmentNotFound возвращается, когда запись клиента не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidShiftAction возвращается при неизвестном действии глобального сдвига
	ErrInvalidShiftAction = errors.New("invalid shift action")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
