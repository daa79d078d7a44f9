package update_appointment

import (
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/appointments/models"
)

// UpdateAppointmentRequest HTTP request model.
// Оба поля опциональны, но хотя бы одно должно быть указано.
type UpdateAppointmentRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest(userID int64) *models.UpdateAppointmentRequest {
	return &models.UpdateAppointmentRequest{
		UserID: userID,
		Status: r.Status,
		Notes:  r.Notes,
	}
}
