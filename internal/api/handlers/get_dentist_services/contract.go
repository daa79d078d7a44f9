package get_dentist_services

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListByDentist(ctx context.Context, dentistID int64) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
