package models

import (
	"errors"
	"fmt"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при некорректном расписании
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidConfig возвращается при некорректной конфигурации слотов
	ErrInvalidConfig = errors.New("invalid slots config")
)

// Request модели

// DayScheduleRequest расписание одного дня недели
type DayScheduleRequest struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00"
	CloseTime *string `json:"closeTime,omitempty"` // "18:00"
}

// UpdateScheduleRequest запрос на обновление недельного расписания
type UpdateScheduleRequest struct {
	UserID    int64              `json:"userId"`
	Monday    DayScheduleRequest `json:"monday"`
	Tuesday   DayScheduleRequest `json:"tuesday"`
	Wednesday DayScheduleRequest `json:"wednesday"`
	Thursday  DayScheduleRequest `json:"thursday"`
	Friday    DayScheduleRequest `json:"friday"`
	Saturday  DayScheduleRequest `json:"saturday"`
	Sunday    DayScheduleRequest `json:"sunday"`
}

// ToDomainSchedule конвертирует request в domain расписание с валидацией
func (r *UpdateScheduleRequest) ToDomainSchedule() (*domain.WeeklySchedule, error) {
	schedule := &domain.WeeklySchedule{}

	days := []struct {
		name string
		req  DayScheduleRequest
		dst  *domain.DaySchedule
	}{
		{"monday", r.Monday, &schedule.Monday},
		{"tuesday", r.Tuesday, &schedule.Tuesday},
		{"wednesday", r.Wednesday, &schedule.Wednesday},
		{"thursday", r.Thursday, &schedule.Thursday},
		{"friday", r.Friday, &schedule.Friday},
		{"saturday", r.Saturday, &schedule.Saturday},
		{"sunday", r.Sunday, &schedule.Sunday},
	}

	for _, day := range days {
		converted, err := day.req.toDomainDay()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, day.name, err)
		}
		*day.dst = converted
	}

	return schedule, nil
}

func (r DayScheduleRequest) toDomainDay() (domain.DaySchedule, error) {
	if !r.IsOpen {
		return domain.DaySchedule{IsOpen: false}, nil
	}

	if r.OpenTime == nil || r.CloseTime == nil {
		return domain.DaySchedule{}, errors.New("open day requires openTime and closeTime")
	}

	open, err := types.NewTimeStringFromString(*r.OpenTime)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	close, err := types.NewTimeStringFromString(*r.CloseTime)
	if err != nil {
		return domain.DaySchedule{}, err
	}

	if !open.IsBefore(close) {
		return domain.DaySchedule{}, errors.New("openTime must be before closeTime")
	}

	return domain.DaySchedule{IsOpen: true, OpenTime: &open, CloseTime: &close}, nil
}

// UpsertSlotsConfigRequest запрос на создание/обновление конфигурации слотов
type UpsertSlotsConfigRequest struct {
	UserID                    int64  `json:"userId"`
	ServiceID                 *int64 `json:"serviceId,omitempty"` // nil - общая конфигурация клиники
	SlotDurationMinutes       int    `json:"slotDurationMinutes"`
	MaxConcurrentAppointments int    `json:"maxConcurrentAppointments"`
	AdvanceBookingDays        int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes   int    `json:"minBookingNoticeMinutes"`
}

// Validate проверяет бизнес-ограничения конфигурации
func (r *UpsertSlotsConfigRequest) Validate() error {
	if r.SlotDurationMinutes < domain.MinSlotDurationMinutes || r.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if r.MaxConcurrentAppointments < domain.MinConcurrentAppointments || r.MaxConcurrentAppointments > domain.MaxConcurrentAppointments {
		return fmt.Errorf("%w: maxConcurrentAppointments must be between %d and %d",
			ErrInvalidConfig, domain.MinConcurrentAppointments, domain.MaxConcurrentAppointments)
	}

	if r.AdvanceBookingDays < domain.MinAdvanceBookingDays || r.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidConfig, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if r.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || r.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidConfig, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if r.ServiceID != nil && *r.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidConfig)
	}

	return nil
}

// ToDomainConfig конвертирует request в domain конфигурацию
func (r *UpsertSlotsConfigRequest) ToDomainConfig(dentistID int64) *domain.ClinicSlotsConfig {
	return &domain.ClinicSlotsConfig{
		DentistID:                 dentistID,
		ServiceID:                 r.ServiceID,
		SlotDurationMinutes:       r.SlotDurationMinutes,
		MaxConcurrentAppointments: r.MaxConcurrentAppointments,
		AdvanceBookingDays:        r.AdvanceBookingDays,
		MinBookingNoticeMinutes:   r.MinBookingNoticeMinutes,
	}
}

// Response модели

// DayScheduleResponse расписание одного дня недели
type DayScheduleResponse struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// WeeklyScheduleResponse недельное расписание клиники
type WeeklyScheduleResponse struct {
	Monday    DayScheduleResponse `json:"monday"`
	Tuesday   DayScheduleResponse `json:"tuesday"`
	Wednesday DayScheduleResponse `json:"wednesday"`
	Thursday  DayScheduleResponse `json:"thursday"`
	Friday    DayScheduleResponse `json:"friday"`
	Saturday  DayScheduleResponse `json:"saturday"`
	Sunday    DayScheduleResponse `json:"sunday"`
}

// SlotsConfigResponse конфигурация слотов
type SlotsConfigResponse struct {
	ID                        int64  `json:"id"`
	DentistID                 int64  `json:"dentistId"`
	ServiceID                 *int64 `json:"serviceId,omitempty"`
	SlotDurationMinutes       int    `json:"slotDurationMinutes"`
	MaxConcurrentAppointments int    `json:"maxConcurrentAppointments"`
	AdvanceBookingDays        int    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes   int    `json:"minBookingNoticeMinutes"`
}

// ClinicConfigResponse полная конфигурация клиники
type ClinicConfigResponse struct {
	DentistID    int64                   `json:"dentistId"`
	Schedule     *WeeklyScheduleResponse `json:"schedule,omitempty"`
	SlotsConfigs []SlotsConfigResponse   `json:"slotsConfigs"`
}

// FromDomainSchedule конвертирует domain расписание в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) *WeeklyScheduleResponse {
	if s == nil {
		return nil
	}

	return &WeeklyScheduleResponse{
		Monday:    fromDomainDay(s.Monday),
		Tuesday:   fromDomainDay(s.Tuesday),
		Wednesday: fromDomainDay(s.Wednesday),
		Thursday:  fromDomainDay(s.Thursday),
		Friday:    fromDomainDay(s.Friday),
		Saturday:  fromDomainDay(s.Saturday),
		Sunday:    fromDomainDay(s.Sunday),
	}
}

func fromDomainDay(d domain.DaySchedule) DayScheduleResponse {
	resp := DayScheduleResponse{IsOpen: d.IsOpen}

	if d.OpenTime != nil {
		open := d.OpenTime.String()
		resp.OpenTime = &open
	}
	if d.CloseTime != nil {
		close := d.CloseTime.String()
		resp.CloseTime = &close
	}

	return resp
}

// FromDomainConfig конвертирует domain конфигурацию в DTO
func FromDomainConfig(c *domain.ClinicSlotsConfig) *SlotsConfigResponse {
	if c == nil {
		return nil
	}

	return &SlotsConfigResponse{
		ID:                        c.ID,
		DentistID:                 c.DentistID,
		ServiceID:                 c.ServiceID,
		SlotDurationMinutes:       c.SlotDurationMinutes,
		MaxConcurrentAppointments: c.MaxConcurrentAppointments,
		AdvanceBookingDays:        c.AdvanceBookingDays,
		MinBookingNoticeMinutes:   c.MinBookingNoticeMinutes,
	}
}

// FromDomainConfigList конвертирует список domain конфигураций в DTO
func FromDomainConfigList(configs []*domain.ClinicSlotsConfig) []SlotsConfigResponse {
	result := make([]SlotsConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		if resp := FromDomainConfig(cfg); resp != nil {
			result = append(result, *resp)
		}
	}
	return result
}
