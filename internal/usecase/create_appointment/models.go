package create_appointment

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// Request модель запроса на создание приёма
type Request struct {
	DentistID int64            // ID клиники
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата приёма (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	SessionID string           // ID сессии бронирования (собственная резервация не занимает место)

	// Контактные данные пациента
	PatientName  string  // Имя пациента
	PatientPhone string  // Телефон пациента (нормализуется в E.164)
	PatientEmail *string // Email пациента (опционально)

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным приёмом
type Response struct {
	ID              int64            // ID созданного приёма
	DentistID       int64            // ID клиники
	PatientID       int64            // ID пациента
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата приёма
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус приёма

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги

	Notes *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
