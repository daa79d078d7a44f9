package get_patient

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
	msgInvalidPatientID = "некорректный ID пациента"
	msgNotFound         = "пациент не найден"
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

// Handle GET /api/v1/patients/{patientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем patientId из URL
	vars := mux.Vars(r)
	patientIDStr := vars["patientId"]

	patientID, err := strconv.ParseInt(patientIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /patients/{id} - Invalid patient ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatientID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /patients/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем пациента (сервис сам проверит права доступа)
	patient, err := h.service.GetByID(r.Context(), patientID, userID)
	if err != nil {
		switch {
		case errors.Is(err, patients.ErrPatientNotFound):
			h.logger.Warn("GET /patients/{id} - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, patients.ErrAccessDenied):
			h.logger.Warn("GET /patients/{id} - Access denied: patient_id=%d, user_id=%d", patientID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /patients/{id} - Failed to get patient: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{id} - Patient retrieved successfully: patient_id=%d, user_id=%d",
		patientID, userID)
	handlers.RespondJSON(w, http.StatusOK, patient)
}
