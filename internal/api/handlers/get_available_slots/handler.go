package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidDentistID    = "некорректный ID клиники"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingServiceID    = "ID услуги обязателен"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgScheduleNotFound    = "расписание клиники не найдено"
	msgServiceNotFound     = "услуга не найдена"
	msgInvalidBookingDate  = "некорректная дата записи"
	msgDateTooFar          = "дата записи слишком далеко в будущем"
)

// HeaderSessionID заголовок с ID сессии бронирования.
// Слоты, мягко зарезервированные этой же сессией, не скрываются из выдачи.
const HeaderSessionID = "X-Session-ID"

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/dentists/{dentistId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем dentistId из URL
	dentistIDStr := vars["dentistId"]
	dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/available-slots - Invalid dentist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDentistID)
		return
	}

	// Извлекаем обязательные query параметры
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /dentists/{id}/available-slots - Missing serviceId: dentist_id=%d", dentistID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /dentists/{id}/available-slots - Missing date: dentist_id=%d", dentistID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Сессия бронирования опциональна (резервации своей сессии видны как свободные)
	sessionID := r.Header.Get(HeaderSessionID)

	useCaseReq, err := ToUseCaseRequest(dentistID, serviceID, dateStr, sessionID)
	if err != nil {
		h.logger.Warn("GET /dentists/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /dentists/{id}/available-slots - Service not found: dentist_id=%d, service_id=%d",
				dentistID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /dentists/{id}/available-slots - Schedule not found: dentist_id=%d", dentistID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /dentists/{id}/available-slots - Invalid date: dentist_id=%d, date=%s",
				dentistID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /dentists/{id}/available-slots - Date too far in future: dentist_id=%d, date=%s",
				dentistID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /dentists/{id}/available-slots - Failed to get slots: dentist_id=%d, error=%v",
				dentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /dentists/{id}/available-slots - Slots retrieved: dentist_id=%d, date=%s, slots=%d",
		dentistID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
