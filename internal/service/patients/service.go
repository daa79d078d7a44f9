package patients

import (
	"context"
	"errors"
	"fmt"

	patientRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/patient"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/patients/models"
)

// Service сервис для работы с пациентами клиники
type Service struct {
	patientRepo PatientRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса пациентов
func NewService(patientRepo PatientRepository, logger Logger) *Service {
	return &Service{
		patientRepo: patientRepo,
		logger:      logger,
	}
}

// ListByDentist получает список пациентов клиники
// Доступно только персоналу клиники
func (s *Service) ListByDentist(ctx context.Context, dentistID, userID int64) (*models.PatientListResponse, error) {
	s.logger.Info("ListByDentist: fetching patients for dentist=%d, user=%d", dentistID, userID)

	if err := s.checkDentistAccess(dentistID, userID); err != nil {
		s.logger.Warn("ListByDentist: access denied for user=%d to dentist=%d", userID, dentistID)
		return nil, err
	}

	patients, err := s.patientRepo.ListByDentist(ctx, dentistID)
	if err != nil {
		s.logger.Error("ListByDentist: repository error for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: ListByDentist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDentist: successfully fetched %d patients for dentist=%d", len(patients), dentistID)
	return models.FromDomainPatientList(patients), nil
}

// GetByID получает пациента по ID
// Доступно только персоналу клиники, которой принадлежит пациент
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.PatientResponse, error) {
	s.logger.Info("GetByID: fetching patient id=%d for user=%d", id, userID)

	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Warn("GetByID: patient id=%d not found", id)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("GetByID: repository error for patient id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkDentistAccess(patient.DentistID, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to patient id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainPatient(patient), nil
}

// checkDentistAccess проверяет, что пользователь является персоналом клиники
func (s *Service) checkDentistAccess(dentistID, userID int64) error {
	if dentistID == userID {
		return nil
	}
	return ErrAccessDenied
}
