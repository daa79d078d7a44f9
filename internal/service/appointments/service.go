package appointments

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/appointment"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/appointments/models"
)

// Service сервис для работы с приёмами
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает приём по ID
// Доступно только персоналу клиники, которой принадлежит приём
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkDentistAccess(appt.DentistID, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetDentistAppointments получает приёмы клиники с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых приёмов.
// Доступно только персоналу клиники.
//
// Примеры использования:
// - Все активные приёмы: GetDentistAppointments(ctx, &GetDentistAppointmentsRequest{DentistID: 1, UserID: 1})
// - Приёмы на дату: StartDate и EndDate указывают на одну дату
// - Только подтверждённые: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetDentistAppointments(ctx context.Context, req *models.GetDentistAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetDentistAppointments: fetching appointments for dentist=%d, user=%d", req.DentistID, req.UserID)

	if err := s.checkDentistAccess(req.DentistID, req.UserID); err != nil {
		s.logger.Warn("GetDentistAppointments: access denied for user=%d to dentist=%d", req.UserID, req.DentistID)
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDentistAppointments: invalid filter for dentist=%d: %v", req.DentistID, err)
		if errors.Is(err, models.ErrInvalidStatus) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByDentistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDentistAppointments: repository error for dentist=%d: %v", req.DentistID, err)
		return nil, fmt.Errorf("%w: GetDentistAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDentistAppointments: successfully fetched %d appointments for dentist=%d",
		len(appointments), req.DentistID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Update изменяет статус и/или заметки приёма
// Доступно только персоналу клиники
func (s *Service) Update(ctx context.Context, appointmentID int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Update: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Update: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := s.checkDentistAccess(appt.DentistID, req.UserID); err != nil {
		s.logger.Warn("Update: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return nil, err
	}

	if req.Status == nil && req.Notes == nil {
		s.logger.Warn("Update: empty patch for appointment id=%d", appointmentID)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if !appt.CanBeUpdated() {
		s.logger.Warn("Update: appointment id=%d cannot be updated, status=%s", appointmentID, appt.Status)
		return nil, ErrCannotUpdate
	}

	if req.Status != nil {
		newStatus, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for appointment id=%d", *req.Status, appointmentID)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}

		if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return nil, ErrAppointmentNotFound
			}
			s.logger.Error("Update: failed to update status for appointment id=%d: %v", appointmentID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	if req.Notes != nil {
		if err := s.appointmentRepo.UpdateNotes(ctx, appointmentID, req.Notes); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return nil, ErrAppointmentNotFound
			}
			s.logger.Error("Update: failed to update notes for appointment id=%d: %v", appointmentID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		s.logger.Error("Update: failed to reload appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated appointment id=%d", appointmentID)
	return models.FromDomainAppointment(updated), nil
}

// Cancel отменяет приём с указанием причины.
// Отмена логически освобождает слот: он снова появляется в выдаче
// доступных слотов этой даты.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkDentistAccess(appt.DentistID, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// Delete физически удаляет приём.
// История теряется - для штатной отмены используется Cancel.
func (s *Service) Delete(ctx context.Context, appointmentID int64, userID int64) error {
	s.logger.Info("Delete: deleting appointment id=%d by user=%d", appointmentID, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkDentistAccess(appt.DentistID, userID); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to appointment id=%d", userID, appointmentID)
		return err
	}

	if err := s.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", appointmentID)
	return nil
}

// checkDentistAccess проверяет, что пользователь является персоналом клиники.
// Учётные записи персонала совпадают с ID клиники: отдельного
// сервиса пользователей у движка нет.
func (s *Service) checkDentistAccess(dentistID, userID int64) error {
	if dentistID == userID {
		return nil
	}
	return ErrAccessDenied
}
