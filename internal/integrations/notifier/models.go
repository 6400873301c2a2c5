package notifier

// Message исходящее сообщение для шлюза уведомлений
type Message struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

// SendResponse ответ шлюза на отправку сообщения
type SendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от шлюза уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
