package domain

import "github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"

// TimeSlot доступный для записи временной слот
// Вычисляется по требованию из расписания и активных приёмов, не хранится
type TimeSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Capacity        int // Максимум параллельных приёмов в слоте
	Remaining       int // Свободные места
	IsAvailable     bool
}

// IsFull возвращает true, если свободных мест нет
func (s *TimeSlot) IsFull() bool {
	return s.Remaining <= 0
}

// IsPartiallyBooked возвращает true, если часть мест занята
func (s *TimeSlot) IsPartiallyBooked() bool {
	return s.Remaining > 0 && s.Remaining < s.Capacity
}

// OccupancyRate возвращает загрузку слота в процентах (0-100)
func (s *TimeSlot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	occupied := s.Capacity - s.Remaining
	return float64(occupied) / float64(s.Capacity) * 100
}
