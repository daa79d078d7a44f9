package draft

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// State состояние черновика записи
type State string

const (
	// StateSelectingService выбор услуги
	StateSelectingService State = "selecting_service"
	// StateSelectingDateTime выбор даты и времени
	StateSelectingDateTime State = "selecting_datetime"
	// StateEnteringDetails ввод контактных данных пациента
	StateEnteringDetails State = "entering_details"
	// StateReviewingConfirmation проверка данных перед отправкой
	StateReviewingConfirmation State = "reviewing_confirmation"
	// StateSubmitted запись создана (терминальное состояние)
	StateSubmitted State = "submitted"
	// StateFailed попытка создания не удалась (повтор возможен из проверки)
	StateFailed State = "failed"
)

// IsTerminal возвращает true для состояний, из которых черновик не редактируется
func (s State) IsTerminal() bool {
	return s == StateSubmitted
}

// Draft черновик записи одной сессии бронирования.
// Живёт только в памяти процесса: отказ от черновика на любом
// незавершённом шаге не требует очистки хранилища.
type Draft struct {
	SessionID string // Уникальный ID попытки бронирования (ключ мягких резерваций)
	ClientID  string // Стабильный ID клиента (ключ автозаполнения, опционально)
	DentistID int64
	State     State

	// Шаг выбора услуги
	ServiceID *int64

	// Шаг выбора даты и времени
	Date     *time.Time
	TimeSlot *types.TimeString

	// Шаг ввода контактных данных
	PatientName     string
	PatientPhone    string
	PatientEmail    *string
	Notes           *string
	SaveContactInfo bool

	// Результат успешной отправки
	AppointmentID *int64

	CreatedAt time.Time
}

// HasService возвращает true, когда услуга выбрана
func (d *Draft) HasService() bool {
	return d.ServiceID != nil
}

// HasDateTime возвращает true, когда дата и слот выбраны
func (d *Draft) HasDateTime() bool {
	return d.Date != nil && d.TimeSlot != nil
}

// HasContactDetails возвращает true, когда обязательные контактные поля заполнены
func (d *Draft) HasContactDetails() bool {
	return d.PatientName != "" && d.PatientPhone != ""
}
