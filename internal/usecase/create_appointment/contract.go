package create_appointment

import (
	"context"
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByDentistWithFilter(ctx context.Context, filter domain.DentistAppointmentsFilter) ([]*domain.Appointment, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	// Upsert создает пациента или обновляет существующего по паре (клиника, телефон)
	Upsert(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
}

// ServiceRepository интерфейс каталога услуг клиники
type ServiceRepository interface {
	GetByID(ctx context.Context, dentistID, serviceID int64) (*domain.Service, error)
}

// ConfigRepository интерфейс репозитория конфигурации клиники
type ConfigRepository interface {
	GetWeeklySchedule(ctx context.Context, dentistID int64) (*domain.WeeklySchedule, error)
	GetConfigWithHierarchy(ctx context.Context, dentistID int64, serviceID int64) (*domain.ClinicSlotsConfig, error)
}

// ReservationCounter интерфейс счётчика мягких резерваций слотов.
// Живые чужие резервации занимают места наравне с приёмами при проверке слота
type ReservationCounter interface {
	CountForeign(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString, sessionID string) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
