package clinicconfig

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации клиники
type ConfigRepository interface {
	GetWeeklySchedule(ctx context.Context, dentistID int64) (*domain.WeeklySchedule, error)
	UpsertWeeklySchedule(ctx context.Context, dentistID int64, schedule *domain.WeeklySchedule) error
	GetByDentistAndService(ctx context.Context, dentistID int64, serviceID *int64) (*domain.ClinicSlotsConfig, error)
	GetAllByDentist(ctx context.Context, dentistID int64) ([]*domain.ClinicSlotsConfig, error)
	Upsert(ctx context.Context, cfg *domain.ClinicSlotsConfig) (*domain.ClinicSlotsConfig, error)
	Delete(ctx context.Context, dentistID int64, serviceID *int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
