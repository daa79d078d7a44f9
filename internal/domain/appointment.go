package domain

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// AppointmentStatus статус приёма
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись на приём в клинике
type Appointment struct {
	ID              int64
	DentistID       int64
	PatientID       int64
	ServiceID       int64
	Date            time.Time // Календарная дата приёма (без времени)
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если приём занимает слот
// Отмененные приёмы слот не занимают
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled возвращает true, если приём отменён
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если приём ещё можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeUpdated возвращает true, если приём ещё можно изменять
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// DentistAppointmentsFilter фильтр для получения приёмов клиники
type DentistAppointmentsFilter struct {
	DentistID       int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые приёмы
}
