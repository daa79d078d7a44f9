package delete_slots_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/middleware"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/service/clinicconfig"
)

const (
	msgInvalidDentistID = "некорректный ID клиники"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "конфигурация не найдена"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/dentists/{dentistId}/slots-config
// Query params: serviceId (опционально; без него удаляется общая конфигурация клиники)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dentistId из URL
	vars := mux.Vars(r)
	dentistIDStr := vars["dentistId"]

	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /dentists/{id}/slots-config - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /dentists/{id}/slots-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Парсим serviceId если указан
	var serviceID *int64
	if serviceIDStr := r.URL.Query().Get("serviceId"); serviceIDStr != "" {
		id, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /dentists/{id}/slots-config - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &id
	}

	// Удаляем конфигурацию (сервис сам проверит права персонала)
	if err := h.service.DeleteSlotsConfig(r.Context(), dentistID, userID, serviceID); err != nil {
		switch {
		case errors.Is(err, clinicconfig.ErrConfigNotFound):
			h.logger.Warn("DELETE /dentists/{id}/slots-config - Config not found: dentist_id=%d, service_id=%v",
				dentistID, serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, clinicconfig.ErrAccessDenied):
			h.logger.Warn("DELETE /dentists/{id}/slots-config - Access denied: dentist_id=%d, user_id=%d",
				dentistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /dentists/{id}/slots-config - Failed to delete config: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /dentists/{id}/slots-config - Config deleted successfully: dentist_id=%d, service_id=%v",
		dentistID, serviceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
