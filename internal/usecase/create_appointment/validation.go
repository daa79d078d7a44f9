package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DentistID <= 0 {
		return fmt.Errorf("%w: dentistID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patient name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.PatientPhone) == "" {
		return fmt.Errorf("%w: patient phone is required", ErrInvalidInput)
	}

	return nil
}

// normalizePhone нормализует телефон пациента в формат E.164.
// Регион используется для номеров без международного префикса.
func normalizePhone(phone, region string) (string, error) {
	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPhone, phone)
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(apptDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(apptDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 - нет ограничений на горизонт записи
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	apptDateOnly := time.Date(apptDate.Year(), apptDate.Month(), apptDate.Day(), 0, 0, 0, 0, apptDate.Location())

	if apptDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateAppointmentTime проверяет, что запись не нарушает minBookingNoticeMinutes
func validateAppointmentTime(
	apptDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Для будущих дат проверка не нужна
	if !isSameDay(apptDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// validateSlotOnGrid проверяет, что время начала совпадает с сеткой слотов клиники.
// Произвольное время (например, 10:07 при шаге 30 минут) не допускается.
func validateSlotOnGrid(startTime types.TimeString, daySlots []types.TimeString) error {
	for _, slot := range daySlots {
		if slot.Equal(startTime) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not on the slot grid", ErrInvalidTimeSlot, startTime)
}

// countOverlappingAppointments подсчитывает количество активных приёмов на указанный слот
func countOverlappingAppointments(
	startTime types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(slotDuration)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, appt := range appointments {
		// Отменённые приёмы не занимают место
		if !appt.IsActive() {
			continue
		}

		apptStart := appt.StartTime
		apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			continue
		}

		// Строгие неравенства: граничные случаи не считаются пересечением
		if apptStart.IsBefore(slotEnd) && apptEnd.IsAfter(startTime) {
			count++
		}
	}

	return count, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
