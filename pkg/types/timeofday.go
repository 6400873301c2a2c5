package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// Format канонический формат времени суток (24 часа)
	Format = "15:04"

	// DisplayFormat формат для отображения клиенту (12 часов, AM/PM)
	DisplayFormat = "03:04 PM"

	minutesPerDay = 24 * 60
)

// TimeOfDay represents a time of day as minutes since midnight.
// Stored and compared numerically; the display string ("10:00 AM") is
// derived, never used as a sort key.
type TimeOfDay int

// NewTimeOfDay создает TimeOfDay из time.Time (дата отбрасывается)
func NewTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay парсит время в каноническом формате "15:04"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(Format, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %v", s, err)
	}
	return NewTimeOfDay(t), nil
}

// ParseDisplay парсит время в формате отображения "03:04 PM".
// Регистр AM/PM не важен, ведущий ноль в часах не обязателен.
func ParseDisplay(s string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	for _, layout := range []string{DisplayFormat, "3:04 PM"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return NewTimeOfDay(t), nil
		}
	}
	return 0, fmt.Errorf("invalid display time %q: expected format %q", s, DisplayFormat)
}

// Validate проверяет, что значение лежит в пределах суток
func (t TimeOfDay) Validate() error {
	if t < 0 || t >= minutesPerDay {
		return fmt.Errorf("time of day out of range: %d minutes", int(t))
	}
	return nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// Hour возвращает час (0-23)
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute возвращает минуту внутри часа (0-59)
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// String возвращает каноническое представление "15:04"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Display возвращает представление для клиента, например "10:00 AM"
func (t TimeOfDay) Display() string {
	ref := time.Date(2000, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
	return ref.Format(DisplayFormat)
}

// AddMinutes возвращает время, сдвинутое на m минут (без перехода через сутки)
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	return TimeOfDay(int(t) + m)
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t > other
}

// MarshalJSON сериализует время в каноническом формате "15:04"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON принимает и канонический формат, и формат отображения
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		parsed, err = ParseDisplay(s)
	}
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer: в БД храним минуты как целое
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

// Scan реализует sql.Scanner
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
		return nil
	case nil:
		*t = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}
