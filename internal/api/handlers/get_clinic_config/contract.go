package get_clinic_config

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig/models"
)

type ConfigService interface {
	GetConfig(ctx context.Context, dentistID int64) (*models.ClinicConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
