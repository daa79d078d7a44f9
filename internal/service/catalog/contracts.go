package catalog

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

// ServiceRepository интерфейс каталога услуг клиники
type ServiceRepository interface {
	GetByID(ctx context.Context, dentistID, serviceID int64) (*domain.Service, error)
	ListByDentist(ctx context.Context, dentistID int64) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
