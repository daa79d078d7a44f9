package get_dentist_patients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/middleware"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/patients"
)

const (
	msgInvalidDentistID = "некорректный ID клиники"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service PatientService
	logger  Logger
}

func NewHandler(service PatientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dentists/{dentistId}/patients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dentistId из URL
	vars := mux.Vars(r)
	dentistIDStr := vars["dentistId"]

	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/patients - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /dentists/{id}/patients - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем картотеку пациентов (сервис сам проверит права доступа)
	result, err := h.service.ListByDentist(r.Context(), dentistID, userID)
	if err != nil {
		switch {
		case errors.Is(err, patients.ErrAccessDenied):
			h.logger.Warn("GET /dentists/{id}/patients - Access denied: dentist_id=%d, user_id=%d",
				dentistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /dentists/{id}/patients - Failed to get patients: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dentists/{id}/patients - Patients retrieved successfully: dentist_id=%d, count=%d",
		dentistID, len(result.Patients))
	handlers.RespondJSON(w, http.StatusOK, result)
}
