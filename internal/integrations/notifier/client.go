package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент шлюза уведомлений (WhatsApp gateway)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет сообщение на номер телефона клиента
func (c *Client) Send(ctx context.Context, phone, text string) (*SendResponse, error) {
	url := fmt.Sprintf("%s/api/v1/messages", c.baseURL)

	payload, err := json.Marshal(Message{Phone: phone, Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: phone=%s", ErrInvalidPhone, phone)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var result SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

// SendBestEffort отправляет сообщение с graceful degradation.
// При недоступности шлюза возвращает ErrServiceDegraded: вызывающий код
// логирует проблему, но не откатывает бизнес-операцию
func (c *Client) SendBestEffort(ctx context.Context, phone, text string) error {
	c.log.Info("Sending notification to phone=%s", phone)

	resp, err := c.Send(ctx, phone, text)
	if err != nil {
		// Некорректный номер - это ошибка данных, пробрасываем её дальше
		if errors.Is(err, ErrInvalidPhone) {
			c.log.Warn("Notification rejected, invalid phone=%s", phone)
			return err
		}

		// Для всех остальных ошибок (недоступность шлюза, timeout и т.д.)
		// применяем graceful degradation
		c.log.Error("Notifier unavailable, message to phone=%s dropped: %v", phone, err)
		return fmt.Errorf("%w: phone=%s, error=%v", ErrServiceDegraded, phone, err)
	}

	c.log.Info("Notification sent, message_id=%s status=%s", resp.MessageID, resp.Status)
	return nil
}
