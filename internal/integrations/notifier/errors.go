package notifier

import "errors"

var (
	// ErrInvalidPhone возвращается, когда шлюз отклонил номер телефона
	ErrInvalidPhone = errors.New("notifier client: invalid phone number")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrServiceDegraded возвращается при недоступности шлюза
	// Уведомления best-effort: бронирование не откатывается из-за этой ошибки
	ErrServiceDegraded = errors.New("notifier unavailable: message not delivered")
)
