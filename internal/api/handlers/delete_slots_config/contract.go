package delete_slots_config

import (
	"context"
)

type ConfigService interface {
	DeleteSlotsConfig(ctx context.Context, dentistID, userID int64, serviceID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
