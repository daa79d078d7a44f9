package get_dentist_services

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
)

const msgInvalidDentistID = "некорректный ID клиники"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dentists/{dentistId}/services
// Публичный endpoint: каталог услуг доступен пациентам без аутентификации.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dentistId из URL
	vars := mux.Vars(r)
	dentistIDStr := vars["dentistId"]

	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/services - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	result, err := h.service.ListByDentist(r.Context(), dentistID)
	if err != nil {
		h.logger.Error("GET /dentists/{id}/services - Failed to get services: dentist_id=%d, error=%v",
			dentistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dentists/{id}/services - Services retrieved successfully: dentist_id=%d, count=%d",
		dentistID, len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
