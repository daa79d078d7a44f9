package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время суток в формате "HH:MM" (без даты и часового пояса)
// Используется для времени начала слотов и рабочих часов клиники
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrNegativeMinutes возвращается при попытке прибавить отрицательное количество минут
	ErrNegativeMinutes = errors.New("minutes must not be negative")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time is out of day range")
)

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение имеет формат HH:MM и попадает в сутки
func (t TimeString) Validate() error {
	if _, err := t.minutes(); err != nil {
		return err
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	m1, err1 := t.minutes()
	m2, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return m1 < m2
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	m1, err1 := t.minutes()
	m2, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return m1 > m2
}

// Equal возвращает true, если времена совпадают с точностью до минуты
func (t TimeString) Equal(other TimeString) bool {
	m1, err1 := t.minutes()
	m2, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return m1 == m2
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперед
// Результат не может выходить за пределы суток (24:00 допустимо как конец дня)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if minutes < 0 {
		return "", ErrNegativeMinutes
	}

	m, err := t.minutes()
	if err != nil {
		return "", err
	}

	m += minutes
	if m > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOverflow, t, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// MinutesSinceMidnight возвращает количество минут с начала суток
func (t TimeString) MinutesSinceMidnight() (int, error) {
	return t.minutes()
}

// minutes парсит значение в минуты с начала суток
func (t TimeString) minutes() (int, error) {
	s := string(t)
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	var hh, mm int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	// 24:00 разрешаем как верхнюю границу рабочего дня
	if hh < 0 || hh > 24 || mm < 0 || mm > 59 || (hh == 24 && mm != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return hh*60 + mm, nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает TEXT ("10:00") и TIME ("10:00:00") колонки
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}

	if len(s) > 5 {
		s = s[:5]
	}

	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
