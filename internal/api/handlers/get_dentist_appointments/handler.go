package get_dentist_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/middleware"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/appointments"
)

const (
	msgInvalidDentistID = "некорректный ID клиники"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dentists/{dentistId}/appointments
// Query params: date, startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dentistId из URL
	vars := mux.Vars(r)
	dentistIDStr := vars["dentistId"]

	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/appointments - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /dentists/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		dentistID,
		userID,
		query.Get("date"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("status"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем приёмы клиники (сервис сам проверит права доступа)
	result, err := h.service.GetDentistAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /dentists/{id}/appointments - Access denied: dentist_id=%d, user_id=%d",
				dentistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /dentists/{id}/appointments - Invalid status filter: dentist_id=%d", dentistID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /dentists/{id}/appointments - Failed to get appointments: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dentists/{id}/appointments - Appointments retrieved successfully: dentist_id=%d, count=%d",
		dentistID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
