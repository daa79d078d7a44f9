package models

import (
	"errors"
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену приёма
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateAppointmentRequest запрос на изменение приёма (статус и/или заметки)
type UpdateAppointmentRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// GetDentistAppointmentsRequest запрос на получение приёмов клиники
type GetDentistAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	DentistID       int64      `json:"dentistId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые приёмы
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDentistAppointmentsRequest) ToDomainFilter() (domain.DentistAppointmentsFilter, error) {
	filter := domain.DentistAppointmentsFilter{
		DentistID:       r.DentistID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными приёма
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	DentistID       int64  `json:"dentistId"`
	PatientID       int64  `json:"patientId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком приёмов
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		DentistID:          a.DentistID,
		PatientID:          a.PatientID,
		ServiceID:          a.ServiceID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
