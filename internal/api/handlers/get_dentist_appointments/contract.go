package get_dentist_appointments

import (
	"context"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	GetDentistAppointments(ctx context.Context, req *models.GetDentistAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
