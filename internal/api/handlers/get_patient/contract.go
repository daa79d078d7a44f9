package get_patient

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/patients/models"
)

type PatientService interface {
	GetByID(ctx context.Context, id, userID int64) (*models.PatientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
