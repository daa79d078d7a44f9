package patients

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	ListByDentist(ctx context.Context, dentistID int64) ([]*domain.Patient, error)
}

// AppointmentRepository интерфейс репозитория приёмов (история пациента)
type AppointmentRepository interface {
	GetByPatientID(ctx context.Context, patientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
