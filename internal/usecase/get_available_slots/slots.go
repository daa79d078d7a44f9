package get_available_slots

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// generateTimeSlots генерирует список временных слотов на день.
// Слоты идут от открытия клиники с фиксированным шагом slotDuration,
// затем фильтруются с учетом текущего времени и минимального времени до записи.
func generateTimeSlots(
	day domain.DaySchedule,
	slotDuration int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	// Дата в прошлом - слотов нет
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Клиника закрыта в этот день
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return []types.TimeString{}, nil
	}

	allSlots, err := domain.GenerateSlots(*day.OpenTime, *day.CloseTime, slotDuration)
	if err != nil {
		return nil, err
	}

	// Для будущих дат все слоты доступны
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Сегодня: оставляем только слоты, начинающиеся не раньше now + notice
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return nil, err
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// calculateAvailableSpots вычисляет количество свободных мест для каждого слота.
// Занятость слота - это пересекающиеся активные приёмы плюс чужие мягкие резервации.
func calculateAvailableSpots(
	slots []types.TimeString,
	slotDuration int,
	appointments []*domain.Appointment,
	reservations map[types.TimeString]int,
	maxConcurrent int,
) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slots))

	for i, slotStart := range slots {
		overlappingCount := countOverlappingAppointments(slotStart, slotDuration, appointments)

		remaining := maxConcurrent - overlappingCount - reservations[slotStart]
		if remaining < 0 {
			remaining = 0
		}

		result[i] = domain.TimeSlot{
			StartTime:       slotStart,
			DurationMinutes: slotDuration,
			Capacity:        maxConcurrent,
			Remaining:       remaining,
			IsAvailable:     remaining > 0,
		}
	}

	return result
}

// countOverlappingAppointments подсчитывает количество приёмов, пересекающихся с указанным слотом.
// Пересечение есть только если интервалы действительно накладываются друг на друга:
// приём, который заканчивается ровно там, где начинается слот (или наоборот), НЕ пересекается.
//
// Примеры:
// - Слот 11:30-12:00, приём 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, приём 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, приём 12:00-12:30 → НЕТ пересечения (граничат)
func countOverlappingAppointments(slotStart types.TimeString, slotDuration int, appointments []*domain.Appointment) int {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		// Если не можем вычислить конец слота, считаем что пересечений нет
		return 0
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
		if apptStart.IsBefore(slotEnd) && apptEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
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
