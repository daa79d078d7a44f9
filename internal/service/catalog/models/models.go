package models

import (
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	DentistID       int64   `json:"dentistId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Description     *string `json:"description,omitempty"`
}

// ServiceListResponse ответ со списком услуг клиники
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		DentistID:       s.DentistID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Description:     s.Description,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	if services == nil {
		return &ServiceListResponse{Services: []ServiceResponse{}}
	}

	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, len(services)),
	}

	for i, svc := range services {
		if svcResp := FromDomainService(svc); svcResp != nil {
			resp.Services[i] = *svcResp
		}
	}

	return resp
}
