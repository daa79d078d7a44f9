package appointments

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория приёмов
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByPatientID(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByDentistWithFilter(ctx context.Context, filter domain.DentistAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	UpdateNotes(ctx context.Context, id int64, notes *string) error
	Cancel(ctx context.Context, id int64, reason string) error
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
