package clinicconfig

import (
	"context"
	"errors"
	"fmt"

	configRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/clinicconfig"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig/models"
)

// Service сервис конфигурации клиники: недельное расписание работы
// и настройки слотов (общие и per-услуга)
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetConfig получает полную конфигурацию клиники.
// Публичная операция: страница записи показывает расписание работы.
// Отсутствующее расписание не ошибка - клиника ещё не настроена.
func (s *Service) GetConfig(ctx context.Context, dentistID int64) (*models.ClinicConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for dentist=%d", dentistID)

	resp := &models.ClinicConfigResponse{
		DentistID:    dentistID,
		SlotsConfigs: []models.SlotsConfigResponse{},
	}

	schedule, err := s.configRepo.GetWeeklySchedule(ctx, dentistID)
	if err != nil && !errors.Is(err, configRepo.ErrScheduleNotFound) {
		s.logger.Error("GetConfig: failed to get schedule for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}
	resp.Schedule = models.FromDomainSchedule(schedule)

	configs, err := s.configRepo.GetAllByDentist(ctx, dentistID)
	if err != nil {
		s.logger.Error("GetConfig: failed to get slots configs for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}
	resp.SlotsConfigs = models.FromDomainConfigList(configs)

	s.logger.Info("GetConfig: successfully fetched config for dentist=%d (%d slots configs)",
		dentistID, len(resp.SlotsConfigs))
	return resp, nil
}

// UpdateSchedule обновляет недельное расписание работы клиники
// Доступно только персоналу клиники
func (s *Service) UpdateSchedule(ctx context.Context, dentistID int64, req *models.UpdateScheduleRequest) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for dentist=%d by user=%d", dentistID, req.UserID)

	if err := s.checkDentistAccess(dentistID, req.UserID); err != nil {
		s.logger.Warn("UpdateSchedule: access denied for user=%d to dentist=%d", req.UserID, dentistID)
		return nil, err
	}

	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.configRepo.UpsertWeeklySchedule(ctx, dentistID, schedule); err != nil {
		s.logger.Error("UpdateSchedule: repository error for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for dentist=%d", dentistID)
	return models.FromDomainSchedule(schedule), nil
}

// UpsertSlotsConfig создает или обновляет конфигурацию слотов.
// serviceID == nil задаёт общую конфигурацию клиники,
// иначе переопределение для конкретной услуги.
// Доступно только персоналу клиники.
func (s *Service) UpsertSlotsConfig(ctx context.Context, dentistID int64, req *models.UpsertSlotsConfigRequest) (*models.SlotsConfigResponse, error) {
	s.logger.Info("UpsertSlotsConfig: upserting config for dentist=%d, service=%v by user=%d",
		dentistID, req.ServiceID, req.UserID)

	if err := s.checkDentistAccess(dentistID, req.UserID); err != nil {
		s.logger.Warn("UpsertSlotsConfig: access denied for user=%d to dentist=%d", req.UserID, dentistID)
		return nil, err
	}

	if err := req.Validate(); err != nil {
		s.logger.Warn("UpsertSlotsConfig: validation failed for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cfg, err := s.configRepo.Upsert(ctx, req.ToDomainConfig(dentistID))
	if err != nil {
		s.logger.Error("UpsertSlotsConfig: repository error for dentist=%d: %v", dentistID, err)
		return nil, fmt.Errorf("%w: UpsertSlotsConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertSlotsConfig: successfully upserted config id=%d for dentist=%d", cfg.ID, dentistID)
	return models.FromDomainConfig(cfg), nil
}

// DeleteSlotsConfig удаляет конфигурацию слотов.
// Доступно только персоналу клиники.
func (s *Service) DeleteSlotsConfig(ctx context.Context, dentistID, userID int64, serviceID *int64) error {
	s.logger.Info("DeleteSlotsConfig: deleting config for dentist=%d, service=%v by user=%d",
		dentistID, serviceID, userID)

	if err := s.checkDentistAccess(dentistID, userID); err != nil {
		s.logger.Warn("DeleteSlotsConfig: access denied for user=%d to dentist=%d", userID, dentistID)
		return err
	}

	if err := s.configRepo.Delete(ctx, dentistID, serviceID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("DeleteSlotsConfig: config not found for dentist=%d, service=%v", dentistID, serviceID)
			return ErrConfigNotFound
		}
		s.logger.Error("DeleteSlotsConfig: repository error for dentist=%d: %v", dentistID, err)
		return fmt.Errorf("%w: DeleteSlotsConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSlotsConfig: successfully deleted config for dentist=%d, service=%v", dentistID, serviceID)
	return nil
}

// checkDentistAccess проверяет, что пользователь является персоналом клиники
func (s *Service) checkDentistAccess(dentistID, userID int64) error {
	if dentistID == userID {
		return nil
	}
	return ErrAccessDenied
}
