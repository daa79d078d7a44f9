package get_clinic_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
)

const msgInvalidDentistID = "некорректный ID клиники"

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

// Handle GET /api/v1/dentists/{dentistId}/config
// Публичный endpoint: страница записи показывает расписание работы клиники.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dentistId из URL
	vars := mux.Vars(r)
	dentistIDStr := vars["dentistId"]

	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/config - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Отсутствующее расписание не ошибка: вернётся конфигурация без schedule
	config, err := h.service.GetConfig(r.Context(), dentistID)
	if err != nil {
		h.logger.Error("GET /dentists/{id}/config - Failed to get config: dentist_id=%d, error=%v",
			dentistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dentists/{id}/config - Config retrieved successfully: dentist_id=%d", dentistID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
