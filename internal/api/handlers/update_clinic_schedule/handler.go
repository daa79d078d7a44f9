package update_clinic_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/middleware"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig/models"
)

const (
	msgInvalidDentistID   = "некорректный ID клиники"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidSchedule    = "некорректное расписание"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/dentists/{dentistId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dentistId из URL
	vars := mux.Vars(r)
	dentistIDStr := vars["dentistId"]

	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /dentists/{id}/schedule - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /dentists/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dentists/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	// Обновляем расписание (сервис сам проверит права персонала)
	result, err := h.service.UpdateSchedule(r.Context(), dentistID, &req)
	if err != nil {
		switch {
		case errors.Is(err, clinicconfig.ErrAccessDenied):
			h.logger.Warn("PUT /dentists/{id}/schedule - Access denied: dentist_id=%d, user_id=%d",
				dentistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, clinicconfig.ErrInvalidInput):
			h.logger.Warn("PUT /dentists/{id}/schedule - Invalid schedule: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /dentists/{id}/schedule - Failed to update schedule: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /dentists/{id}/schedule - Schedule updated successfully: dentist_id=%d, user_id=%d",
		dentistID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
