package get_available_slots

import (
	"context"
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	// GetByDentistWithFilter получает приёмы клиники с фильтрацией по дате и статусу
	GetByDentistWithFilter(ctx context.Context, filter domain.DentistAppointmentsFilter) ([]*domain.Appointment, error)
}

// ConfigRepository интерфейс репозитория конфигурации клиники
type ConfigRepository interface {
	// GetWeeklySchedule получает недельное расписание работы клиники
	GetWeeklySchedule(ctx context.Context, dentistID int64) (*domain.WeeklySchedule, error)
	// GetConfigWithHierarchy получает конфигурацию слотов с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, dentistID int64, serviceID int64) (*domain.ClinicSlotsConfig, error)
}

// ServiceRepository интерфейс каталога услуг клиники
type ServiceRepository interface {
	GetByID(ctx context.Context, dentistID, serviceID int64) (*domain.Service, error)
}

// ReservationCounter интерфейс счётчика мягких резерваций слотов.
// Резервации уменьшают видимую доступность слота, но не гарантируют место.
type ReservationCounter interface {
	CountForeign(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString, sessionID string) (int, error)
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
