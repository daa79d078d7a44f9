package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// ErrInvalidInterval возвращается при неположительном шаге генерации слотов
var ErrInvalidInterval = errors.New("domain: slot interval must be positive")

// DaySchedule расписание работы клиники на один день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// WeeklySchedule недельное расписание работы клиники
type WeeklySchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForDate возвращает расписание на день недели указанной даты
func (w *WeeklySchedule) ForDate(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// ForWeekday возвращает расписание на день недели
func (w *WeeklySchedule) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// SetForWeekday устанавливает расписание на день недели
func (w *WeeklySchedule) SetForWeekday(weekday time.Weekday, day DaySchedule) {
	switch weekday {
	case time.Monday:
		w.Monday = day
	case time.Tuesday:
		w.Tuesday = day
	case time.Wednesday:
		w.Wednesday = day
	case time.Thursday:
		w.Thursday = day
	case time.Friday:
		w.Friday = day
	case time.Saturday:
		w.Saturday = day
	case time.Sunday:
		w.Sunday = day
	}
}

// GenerateSlots генерирует упорядоченный список времён начала слотов
// от open с шагом intervalMinutes. Слот, конец которого выходит за close,
// отбрасывается. open == close даёт пустой список.
// Детерминированная чистая функция входных данных.
func GenerateSlots(open, close types.TimeString, intervalMinutes int) ([]types.TimeString, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidInterval, intervalMinutes)
	}

	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		// Конец слота за пределами суток отбрасывается так же,
		// как конец за close
		slotEnd, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(close) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots, nil
}
