package catalog

import (
	"context"
	"errors"
	"fmt"

	serviceRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/service"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/catalog/models"
)

// Service сервис каталога услуг клиники.
// Каталог публичный: страница записи показывает услуги без авторизации.
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// ListByDentist получает список услуг клиники
func (s *Service) ListByDentist(ctx context.Context, dentistID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListByDentist: fetching services for dentist=%d", dentistID)

	services, err := s.serviceRepo.ListByDentist(ctx, dentistID)
	if err != nil {
		s.logger.Error("ListByDentist: repository error for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: ListByDentist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDentist: successfully fetched %d services for dentist=%d", len(services), dentistID)
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, dentistID, serviceID int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d for dentist=%d", serviceID, dentistID)

	svc, err := s.serviceRepo.GetByID(ctx, dentistID, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found for dentist=%d", serviceID, dentistID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}
