package upsert_slots_config

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig/models"
)

type ConfigService interface {
	UpsertSlotsConfig(ctx context.Context, dentistID int64, req *models.UpsertSlotsConfigRequest) (*models.SlotsConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
