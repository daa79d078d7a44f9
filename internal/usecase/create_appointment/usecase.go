package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	configRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/clinicconfig"
	serviceRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/service"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// UseCase use case для создания приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	patientRepo     PatientRepository
	serviceRepo     ServiceRepository
	configRepo      ConfigRepository
	txManager       TransactionManager
	reservations    ReservationCounter
	timeProvider    TimeProvider
	phoneRegion     string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	patientRepo PatientRepository,
	serviceRepo ServiceRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	reservations ReservationCounter,
	phoneRegion string,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		serviceRepo:     serviceRepo,
		configRepo:      configRepo,
		txManager:       txManager,
		reservations:    reservations,
		timeProvider:    &RealTimeProvider{},
		phoneRegion:     phoneRegion,
		logger:          logger,
	}
}

// Execute выполняет use case создания приёма.
// Проверка вместимости слота и вставка выполняются в сериализуемой транзакции
// с блокировкой приёмов дня - единственная защита от двойного бронирования.
// Пациент создаётся (или обновляется) ДО транзакции: записи пациентов
// переживают откат, повторная попытка их переиспользует.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: dentist=%d, service=%d, date=%s, time=%s",
		req.DentistID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Нормализуем телефон пациента
	phone, err := normalizePhone(req.PatientPhone, uc.phoneRegion)
	if err != nil {
		uc.logger.Warn("CreateAppointment: phone validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу (для денормализации названия и цены)
	service, err := uc.serviceRepo.GetByID(ctx, req.DentistID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found for dentist=%d", req.ServiceID, req.DentistID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Создаем или обновляем пациента по паре (клиника, телефон)
	patient, err := uc.patientRepo.Upsert(ctx, &domain.Patient{
		DentistID: req.DentistID,
		Name:      req.PatientName,
		Phone:     phone,
		Email:     req.PatientEmail,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to upsert patient: %v", err)
		return nil, fmt.Errorf("%w: failed to upsert patient: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 5. Выполняем проверку слота и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию слотов с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.DentistID, req.ServiceID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateAppointment: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		if config == nil {
			config = &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       domain.DefaultSlotDurationMinutes,
				MaxConcurrentAppointments: domain.DefaultMaxConcurrentAppointments,
				AdvanceBookingDays:        domain.DefaultAdvanceBookingDays,
				MinBookingNoticeMinutes:   domain.DefaultMinBookingNoticeMinutes,
			}
			uc.logger.Info("CreateAppointment: using default config for dentist=%d, service=%d",
				req.DentistID, req.ServiceID)
		}

		// 5.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 5.3. Получаем расписание работы на указанную дату
		schedule, err := uc.configRepo.GetWeeklySchedule(txCtx, req.DentistID)
		if err != nil {
			if errors.Is(err, configRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateAppointment: schedule not found for dentist=%d", req.DentistID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		day := schedule.ForDate(req.Date)
		if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
			uc.logger.Warn("CreateAppointment: clinic is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrClinicClosed
		}

		// 5.4. Время должно совпадать с сеткой слотов
		daySlots, err := domain.GenerateSlots(*day.OpenTime, *day.CloseTime, config.SlotDurationMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to generate slot grid: %v", err)
			return fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
		}

		if err := validateSlotOnGrid(req.StartTime, daySlots); err != nil {
			uc.logger.Warn("CreateAppointment: slot grid validation failed: %v", err)
			return err
		}

		// 5.5. Валидация времени записи (minBookingNoticeMinutes)
		if err := validateAppointmentTime(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: appointment time validation failed: %v", err)
			return err
		}

		// 5.6. Получаем все активные приёмы дня с блокировкой (FOR UPDATE)
		filter := domain.DentistAppointmentsFilter{
			DentistID:       req.DentistID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByDentistWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 5.7. Проверяем доступность слота
		overlappingCount, err := countOverlappingAppointments(req.StartTime, config.SlotDurationMinutes, appointments)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to count overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to count overlapping appointments: %v", ErrInternal, err)
		}

		// Живые резервации других сессий занимают места наравне с приёмами
		foreignReservations := uc.countForeignReservations(txCtx, req)

		if overlappingCount+foreignReservations >= config.MaxConcurrentAppointments {
			suggested := uc.suggestNearestSlot(req, daySlots, appointments, config, now)
			uc.logger.Warn("CreateAppointment: slot %s not available, %d appointments + %d reservations of %d spots, suggested=%v",
				req.StartTime, overlappingCount, foreignReservations, config.MaxConcurrentAppointments, suggested)
			return &SlotUnavailableError{SuggestedTime: suggested}
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken",
			overlappingCount+foreignReservations, config.MaxConcurrentAppointments)

		// 5.8. Создаем приём с денормализацией данных услуги.
		// Новые приёмы всегда ожидают подтверждения клиникой
		appt := &domain.Appointment{
			DentistID:       req.DentistID,
			PatientID:       patient.ID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: config.SlotDurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		DentistID:       result.DentistID,
		PatientID:       result.PatientID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// countForeignReservations считает живые мягкие резервации слота,
// удерживаемые другими сессиями. Резервации рекомендательные:
// недоступность хранилища не блокирует запись, а лишь ослабляет проверку
func (uc *UseCase) countForeignReservations(ctx context.Context, req *Request) int {
	if uc.reservations == nil {
		return 0
	}

	count, err := uc.reservations.CountForeign(ctx, req.DentistID, req.Date, req.StartTime, req.SessionID)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to count reservations for %s: %v", req.StartTime, err)
		return 0
	}

	return count
}

// suggestNearestSlot ищет ближайший свободный слот СТРОГО ПОЗЖЕ запрошенного
// в тот же день. Возвращает nil, когда свободных слотов позже нет.
// Более ранние слоты не предлагаются, даже если они свободны.
func (uc *UseCase) suggestNearestSlot(
	req *Request,
	daySlots []types.TimeString,
	appointments []*domain.Appointment,
	config *domain.ClinicSlotsConfig,
	now time.Time,
) *types.TimeString {
	for _, slot := range daySlots {
		if !slot.IsAfter(req.StartTime) {
			continue
		}

		if err := validateAppointmentTime(req.Date, slot, now, config.MinBookingNoticeMinutes); err != nil {
			continue
		}

		count, err := countOverlappingAppointments(slot, config.SlotDurationMinutes, appointments)
		if err != nil {
			continue
		}

		if count < config.MaxConcurrentAppointments {
			suggested := slot
			return &suggested
		}
	}

	return nil
}
