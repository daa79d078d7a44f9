package create_appointment

import (
	"time"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	createAppointment "github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/create_appointment"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	DentistID       int64   `json:"dentistId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"` // "2026-09-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	PatientName     string  `json:"patientName"`
	PatientPhone    string  `json:"patientPhone"`
	PatientEmail    *string `json:"patientEmail,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	DentistID       int64   `json:"dentistId"`
	PatientID       int64   `json:"patientId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ConflictResponse тело ответа 409 с подсказкой ближайшего свободного слота
type ConflictResponse struct {
	Error         string  `json:"error"`
	SuggestedTime *string `json:"suggestedTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// sessionID исключает собственную мягкую резервацию из проверки слота
func (r *CreateAppointmentRequest) ToUseCaseRequest(sessionID string) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		DentistID:    r.DentistID,
		ServiceID:    r.ServiceID,
		Date:         date,
		StartTime:    startTime,
		SessionID:    sessionID,
		PatientName:  r.PatientName,
		PatientPhone: r.PatientPhone,
		PatientEmail: r.PatientEmail,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		DentistID:       resp.DentistID,
		PatientID:       resp.PatientID,
		ServiceID:       resp.ServiceID,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
