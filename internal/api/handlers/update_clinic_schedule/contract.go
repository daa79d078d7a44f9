package update_clinic_schedule

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig/models"
)

type ConfigService interface {
	UpdateSchedule(ctx context.Context, dentistID int64, req *models.UpdateScheduleRequest) (*models.WeeklyScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
