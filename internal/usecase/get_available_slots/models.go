package get_available_slots

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	DentistID int64     // ID клиники
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
	SessionID string    // ID сессии бронирования (собственные резервации не скрывают слот)
}

// Response модель ответа со списком слотов
type Response struct {
	Date      time.Time         // Дата, на которую запрашивались слоты
	DentistID int64             // ID клиники
	ServiceID int64             // ID услуги
	Slots     []domain.TimeSlot // Список слотов рабочего дня
}

// HasAvailable возвращает true, если в ответе есть хотя бы один свободный слот
func (r *Response) HasAvailable() bool {
	for _, s := range r.Slots {
		if !s.IsFull() {
			return true
		}
	}
	return false
}
