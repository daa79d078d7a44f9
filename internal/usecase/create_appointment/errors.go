package create_appointment

import (
	"errors"
	"fmt"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrScheduleNotFound возвращается, когда расписание клиники не настроено
	ErrScheduleNotFound = errors.New("create_appointment: clinic schedule not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrClinicClosed возвращается, когда клиника закрыта в указанную дату
	ErrClinicClosed = errors.New("create_appointment: clinic is closed on this date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен (все места заняты)
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов клиники
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidPhone возвращается, когда телефон пациента не удалось распознать
	ErrInvalidPhone = errors.New("create_appointment: invalid patient phone number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// SlotUnavailableError ошибка занятого слота с подсказкой ближайшего свободного.
// SuggestedTime == nil означает, что свободных слотов позже в этот день нет.
// Разворачивается в ErrSlotNotAvailable для проверок через errors.Is.
type SlotUnavailableError struct {
	SuggestedTime *types.TimeString
}

// Error возвращает текстовое описание ошибки
func (e *SlotUnavailableError) Error() string {
	if e.SuggestedTime != nil {
		return fmt.Sprintf("%v, nearest available: %s", ErrSlotNotAvailable, *e.SuggestedTime)
	}
	return ErrSlotNotAvailable.Error()
}

// Unwrap возвращает базовую ошибку занятого слота
func (e *SlotUnavailableError) Unwrap() error {
	return ErrSlotNotAvailable
}
