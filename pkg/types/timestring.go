package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время суток в формате HH:MM (например, "09:30")
// Используется для хранения времени начала/окончания рабочих окон
// и сериализации в БД (колонки типа TIME)
type TimeString string

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of range")
)

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := parseMinutes(s); err != nil {
		return "", err
	}
	return TimeString(s), nil
}

// parseMinutes разбирает HH:MM в минуты с начала суток
// "24:00" допустимо как граница конца суток (1440 минут)
func parseMinutes(s string) (int, error) {
	if s == "24:00" {
		return 24 * 60, nil
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// MinutesFromMidnight возвращает количество минут с начала суток
// Для "24:00" возвращает 1440
func (t TimeString) MinutesFromMidnight() (int, error) {
	return parseMinutes(string(t))
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут вперед
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.MinutesFromMidnight()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore проверяет, что время строго раньше другого
// Формат HH:MM позволяет лексикографическое сравнение
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter проверяет, что время строго позже другого
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AnchorTo привязывает время суток к календарной дате в указанной тайм-зоне
// Возвращает момент времени для сравнения в unix-секундах
// "24:00" нормализуется в полночь следующего дня
func (t TimeString) AnchorTo(date time.Time, loc *time.Location) (time.Time, error) {
	minutes, err := t.MinutesFromMidnight()
	if err != nil {
		return time.Time{}, err
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if _, err := parseMinutes(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает форматы "09:30" и "09:30:00" (полночные секунды Postgres TIME)
func (t *TimeString) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidTimeFormat)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, value)
	}

	if len(s) >= 5 {
		s = s[:5]
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
