package get_dentist_patients

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/patients/models"
)

type PatientService interface {
	ListByDentist(ctx context.Context, dentistID, userID int64) (*models.PatientListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
