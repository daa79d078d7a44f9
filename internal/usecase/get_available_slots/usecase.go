package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	configRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/clinicconfig"
	serviceRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/service"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	serviceRepo     ServiceRepository
	reservations    ReservationCounter
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	serviceRepo ServiceRepository,
	reservations ReservationCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		serviceRepo:     serviceRepo,
		reservations:    reservations,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: dentist=%d, service=%d, date=%s",
		req.DentistID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем существование услуги
	if _, err := uc.serviceRepo.GetByID(ctx, req.DentistID, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for dentist=%d", req.ServiceID, req.DentistID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Получаем конфигурацию слотов с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.DentistID, req.ServiceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = &domain.ClinicSlotsConfig{
			SlotDurationMinutes:       domain.DefaultSlotDurationMinutes,
			MaxConcurrentAppointments: domain.DefaultMaxConcurrentAppointments,
			AdvanceBookingDays:        domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes:   domain.DefaultMinBookingNoticeMinutes,
		}
		uc.logger.Info("GetAvailableSlots: using default config for dentist=%d, service=%d",
			req.DentistID, req.ServiceID)
	}

	// 4. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем расписание работы на указанную дату
	schedule, err := uc.configRepo.GetWeeklySchedule(ctx, req.DentistID)
	if err != nil {
		if errors.Is(err, configRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule not found for dentist=%d", req.DentistID)
			return nil, ErrScheduleNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	day := schedule.ForDate(req.Date)
	if !day.IsOpen {
		uc.logger.Info("GetAvailableSlots: clinic is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			DentistID: req.DentistID,
			ServiceID: req.ServiceID,
			Slots:     []domain.TimeSlot{},
		}, nil
	}

	// 6. Генерируем временные слоты
	timeSlots, err := generateTimeSlots(day, config.SlotDurationMinutes, req.Date, now, config.MinBookingNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 7. Получаем все активные приёмы на эту дату
	filter := domain.DentistAppointmentsFilter{
		DentistID:       req.DentistID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByDentistWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Накладываем мягкие резервации чужих сессий.
	// Ошибка Redis не рушит выдачу слотов - резервации рекомендательные
	reservations := uc.collectReservations(ctx, req, timeSlots)

	// 9. Вычисляем доступность для каждого слота
	slots := calculateAvailableSpots(
		timeSlots,
		config.SlotDurationMinutes,
		appointments,
		reservations,
		config.MaxConcurrentAppointments,
	)

	uc.logger.Info("GetAvailableSlots: generated %d slots for dentist=%d, service=%d, date=%s",
		len(slots), req.DentistID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		DentistID: req.DentistID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) collectReservations(ctx context.Context, req *Request, timeSlots []types.TimeString) map[types.TimeString]int {
	reservations := make(map[types.TimeString]int, len(timeSlots))
	if uc.reservations == nil {
		return reservations
	}

	for _, slot := range timeSlots {
		count, err := uc.reservations.CountForeign(ctx, req.DentistID, req.Date, slot, req.SessionID)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: failed to count reservations for %s: %v", slot, err)
			continue
		}
		reservations[slot] = count
	}

	return reservations
}
