package upsert_slots_config

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
	msgInvalidConfig      = "некорректная конфигурация слотов"
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

// Handle PUT /api/v1/dentists/{dentistId}/slots-config
// Body: serviceId == null задаёт общую конфигурацию клиники,
// иначе переопределение для конкретной услуги.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dentistId из URL
	vars := mux.Vars(r)
	dentistIDStr := vars["dentistId"]

	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /dentists/{id}/slots-config - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /dentists/{id}/slots-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req models.UpsertSlotsConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /dentists/{id}/slots-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	// Сохраняем конфигурацию (сервис сам проверит права персонала и границы значений)
	result, err := h.service.UpsertSlotsConfig(r.Context(), dentistID, &req)
	if err != nil {
		switch {
		case errors.Is(err, clinicconfig.ErrAccessDenied):
			h.logger.Warn("PUT /dentists/{id}/slots-config - Access denied: dentist_id=%d, user_id=%d",
				dentistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, clinicconfig.ErrInvalidInput):
			h.logger.Warn("PUT /dentists/{id}/slots-config - Invalid config: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("PUT /dentists/{id}/slots-config - Failed to upsert config: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /dentists/{id}/slots-config - Config upserted successfully: dentist_id=%d, config_id=%d",
		dentistID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
