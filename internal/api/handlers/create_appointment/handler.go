package create_appointment

import (
	"errors"
	"net/http"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/api/handlers"
	createAppointment "github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateOrTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable       = "выбранный временной слот недоступен"
	msgServiceNotFound        = "услуга не найдена"
	msgScheduleNotFound       = "расписание клиники не найдено"
	msgClinicClosed           = "клиника закрыта в выбранную дату"
	msgInvalidAppointmentDate = "некорректная дата записи"
	msgDateTooFar             = "дата записи слишком далеко в будущем"
	msgInvalidTimeSlot        = "некорректный временной слот"
	msgTooLateToBook          = "слишком поздно для записи на этот слот"
	msgInvalidPhone           = "некорректный номер телефона пациента"
	msgInvalidInput           = "некорректные данные записи"
)

// HeaderSessionID заголовок с ID сессии бронирования.
// Собственная мягкая резервация сессии не блокирует её же запись
const HeaderSessionID = "X-Session-ID"

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(r.Header.Get(HeaderSessionID))
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: dentist_id=%d, date=%s, time=%s",
				req.DentistID, req.AppointmentDate, req.StartTime)
			respondSlotConflict(w, err)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: dentist_id=%d, service_id=%d",
				req.DentistID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrScheduleNotFound):
			h.logger.Warn("POST /appointments - Schedule not found: dentist_id=%d", req.DentistID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createAppointment.ErrClinicClosed):
			h.logger.Warn("POST /appointments - Clinic closed: dentist_id=%d, date=%s",
				req.DentistID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgClinicClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: dentist_id=%d, date=%s",
				req.DentistID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidAppointmentDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: dentist_id=%d, date=%s",
				req.DentistID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: dentist_id=%d, time=%s",
				req.DentistID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: dentist_id=%d, date=%s, time=%s",
				req.DentistID, req.AppointmentDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidPhone):
			h.logger.Warn("POST /appointments - Invalid patient phone: dentist_id=%d", req.DentistID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: dentist_id=%d, error=%v", req.DentistID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: dentist_id=%d, error=%v",
				req.DentistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, dentist_id=%d, patient_id=%d",
		result.ID, result.DentistID, result.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondSlotConflict отправляет 409 Conflict, добавляя подсказку
// ближайшего свободного слота, если use case её нашёл.
func respondSlotConflict(w http.ResponseWriter, err error) {
	resp := ConflictResponse{Error: msgSlotNotAvailable}

	var slotErr *createAppointment.SlotUnavailableError
	if errors.As(err, &slotErr) && slotErr.SuggestedTime != nil {
		suggested := slotErr.SuggestedTime.String()
		resp.SuggestedTime = &suggested
	}

	handlers.RespondJSON(w, http.StatusConflict, resp)
}
