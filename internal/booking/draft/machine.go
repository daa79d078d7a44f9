package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/create_appointment"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/get_available_slots"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// SlotsProvider интерфейс получения доступных слотов
type SlotsProvider interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// AppointmentCreator интерфейс создания приёма
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// SlotReserver интерфейс мягких резерваций слотов
type SlotReserver interface {
	Reserve(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString, sessionID string) error
	Release(ctx context.Context, dentistID int64, date time.Time, slotTime types.TimeString, sessionID string) error
}

// AutofillStore интерфейс хранилища контактов для автозаполнения
type AutofillStore interface {
	Save(ctx context.Context, clientID string, contact domain.ContactInfo) error
	Get(ctx context.Context, clientID string) (*domain.ContactInfo, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Machine управляет жизненным циклом черновика записи: выбор услуги,
// выбор даты и времени, ввод контактов, подтверждение и отправка.
// Вперёд черновик двигается только при заполненном текущем шаге;
// назад - всегда. Все методы принимают черновик явно: машина не хранит
// состояние сессий и безопасна для конкурентного использования
// с разными черновиками.
type Machine struct {
	slots       SlotsProvider
	creator     AppointmentCreator
	reserver    SlotReserver
	autofill    AutofillStore
	phoneRegion string
	logger      Logger
}

// NewMachine создает новую машину состояний черновика.
// reserver и autofill опциональны (nil отключает соответствующий механизм).
func NewMachine(
	slots SlotsProvider,
	creator AppointmentCreator,
	reserver SlotReserver,
	autofill AutofillStore,
	phoneRegion string,
	logger Logger,
) *Machine {
	return &Machine{
		slots:       slots,
		creator:     creator,
		reserver:    reserver,
		autofill:    autofill,
		phoneRegion: phoneRegion,
		logger:      logger,
	}
}

// Start создает новый черновик записи для клиники.
// clientID (опционально) используется для автозаполнения контактов
// из предыдущей записи клиента.
func (m *Machine) Start(ctx context.Context, dentistID int64, clientID string) *Draft {
	d := &Draft{
		SessionID: uuid.NewString(),
		ClientID:  clientID,
		DentistID: dentistID,
		State:     StateSelectingService,
		CreatedAt: time.Now(),
	}

	if m.autofill != nil && clientID != "" {
		contact, err := m.autofill.Get(ctx, clientID)
		if err == nil {
			d.PatientName = contact.Name
			d.PatientPhone = contact.Phone
			d.PatientEmail = contact.Email
			m.logger.Info("Draft %s: prefilled contact info for client %s", d.SessionID, clientID)
		}
	}

	m.logger.Info("Draft %s: started for dentist=%d", d.SessionID, dentistID)
	return d
}

// SelectService выбирает услугу и продвигает черновик к выбору даты и времени
func (m *Machine) SelectService(d *Draft, serviceID int64) error {
	if err := m.requireState(d, StateSelectingService); err != nil {
		return err
	}

	if serviceID <= 0 {
		return fmt.Errorf("%w: service is required", ErrIncompleteStep)
	}

	d.ServiceID = &serviceID
	d.State = StateSelectingDateTime

	m.logger.Info("Draft %s: selected service=%d", d.SessionID, serviceID)
	return nil
}

// SelectDateTime выбирает дату и слот, проверяет его доступность
// и продвигает черновик к вводу контактов. Доступный слот мягко
// резервируется на время оформления; резервация рекомендательная,
// финальная проверка происходит при отправке.
func (m *Machine) SelectDateTime(ctx context.Context, d *Draft, date time.Time, slotTime types.TimeString) error {
	if err := m.requireState(d, StateSelectingDateTime); err != nil {
		return err
	}

	if d.ServiceID == nil {
		return fmt.Errorf("%w: service must be selected first", ErrIncompleteStep)
	}

	if date.IsZero() || slotTime.IsZero() {
		return fmt.Errorf("%w: date and time slot are required", ErrIncompleteStep)
	}

	resp, err := m.slots.Execute(ctx, &get_available_slots.Request{
		DentistID: d.DentistID,
		ServiceID: *d.ServiceID,
		Date:      date,
		SessionID: d.SessionID,
	})
	if err != nil {
		return err
	}

	if !slotIsAvailable(resp, slotTime) {
		// Слот занят: дата сохраняется, выбор времени сбрасывается
		d.Date = &date
		d.TimeSlot = nil
		m.logger.Warn("Draft %s: slot %s on %s is not available", d.SessionID, slotTime, date.Format(domain.DateFormat))
		return ErrSlotTaken
	}

	d.Date = &date
	d.TimeSlot = &slotTime
	d.State = StateEnteringDetails

	if m.reserver != nil {
		if err := m.reserver.Reserve(ctx, d.DentistID, date, slotTime, d.SessionID); err != nil {
			m.logger.Warn("Draft %s: failed to reserve slot: %v", d.SessionID, err)
		}
	}

	m.logger.Info("Draft %s: selected %s %s", d.SessionID, date.Format(domain.DateFormat), slotTime)
	return nil
}

// EnterDetails заполняет контактные данные пациента и продвигает
// черновик к подтверждению. Телефон проверяется на корректность,
// email и заметки опциональны.
func (m *Machine) EnterDetails(d *Draft, name, phone string, email, notes *string, saveContactInfo bool) error {
	if err := m.requireState(d, StateEnteringDetails); err != nil {
		return err
	}

	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: patient name is required", ErrIncompleteStep)
	}

	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%w: patient phone is required", ErrIncompleteStep)
	}

	parsed, err := phonenumbers.Parse(phone, m.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("%w: %s", ErrInvalidPhone, phone)
	}

	d.PatientName = strings.TrimSpace(name)
	d.PatientPhone = phonenumbers.Format(parsed, phonenumbers.E164)
	d.PatientEmail = email
	d.Notes = notes
	d.SaveContactInfo = saveContactInfo
	d.State = StateReviewingConfirmation

	m.logger.Info("Draft %s: entered contact details", d.SessionID)
	return nil
}

// Submit отправляет черновик: создаёт приём через двухшаговый коммит
// (пациент, затем приём с повторной проверкой слота).
// Занятый слот возвращает черновик к выбору времени с сохранённой датой;
// прочие ошибки переводят его в failed с возможностью повтора.
func (m *Machine) Submit(ctx context.Context, d *Draft) (*create_appointment.Response, error) {
	if err := m.requireState(d, StateReviewingConfirmation); err != nil {
		return nil, err
	}

	if d.ServiceID == nil || !d.HasDateTime() || !d.HasContactDetails() {
		return nil, fmt.Errorf("%w: draft is not complete", ErrIncompleteStep)
	}

	resp, err := m.creator.Execute(ctx, &create_appointment.Request{
		DentistID:    d.DentistID,
		ServiceID:    *d.ServiceID,
		Date:         *d.Date,
		StartTime:    *d.TimeSlot,
		SessionID:    d.SessionID,
		PatientName:  d.PatientName,
		PatientPhone: d.PatientPhone,
		PatientEmail: d.PatientEmail,
		Notes:        d.Notes,
	})

	if err != nil {
		if errors.Is(err, create_appointment.ErrSlotNotAvailable) {
			// Слот заняли, пока пациент оформлял запись:
			// возвращаемся к выбору времени, дата сохраняется
			m.releaseReservation(ctx, d)
			d.TimeSlot = nil
			d.State = StateSelectingDateTime
			m.logger.Warn("Draft %s: slot taken during submit: %v", d.SessionID, err)
			return nil, err
		}

		d.State = StateFailed
		m.logger.Error("Draft %s: submit failed: %v", d.SessionID, err)
		return nil, err
	}

	m.releaseReservation(ctx, d)
	d.State = StateSubmitted
	d.AppointmentID = &resp.ID

	if d.SaveContactInfo && m.autofill != nil && d.ClientID != "" {
		contact := domain.ContactInfo{
			Name:  d.PatientName,
			Phone: d.PatientPhone,
			Email: d.PatientEmail,
		}
		if err := m.autofill.Save(ctx, d.ClientID, contact); err != nil {
			m.logger.Warn("Draft %s: failed to save contact info: %v", d.SessionID, err)
		}
	}

	m.logger.Info("Draft %s: submitted, appointment id=%d", d.SessionID, resp.ID)
	return resp, nil
}

// Retry возвращает черновик из failed к подтверждению для повторной отправки
func (m *Machine) Retry(d *Draft) error {
	if d.State != StateFailed {
		return fmt.Errorf("%w: retry is only allowed from %s", ErrInvalidTransition, StateFailed)
	}

	d.State = StateReviewingConfirmation
	m.logger.Info("Draft %s: retrying submit", d.SessionID)
	return nil
}

// Back возвращает черновик на предыдущий шаг. Заполненные поля сохраняются.
func (m *Machine) Back(ctx context.Context, d *Draft) error {
	switch d.State {
	case StateSelectingDateTime:
		d.State = StateSelectingService
	case StateEnteringDetails:
		// Уход с выбранного слота снимает его резервацию
		m.releaseReservation(ctx, d)
		d.State = StateSelectingDateTime
	case StateReviewingConfirmation:
		d.State = StateEnteringDetails
	case StateFailed:
		d.State = StateReviewingConfirmation
	case StateSubmitted:
		return ErrTerminalState
	default:
		return fmt.Errorf("%w: no previous step from %s", ErrInvalidTransition, d.State)
	}

	return nil
}

// Abandon отказывается от черновика. Хранилище не изменяется:
// до отправки запись нигде не существует, снимается только
// мягкая резервация слота.
func (m *Machine) Abandon(ctx context.Context, d *Draft) {
	m.releaseReservation(ctx, d)
	m.logger.Info("Draft %s: abandoned in state %s", d.SessionID, d.State)
}

func (m *Machine) requireState(d *Draft, expected State) error {
	if d.State.IsTerminal() {
		return ErrTerminalState
	}
	if d.State != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidTransition, expected, d.State)
	}
	return nil
}

func (m *Machine) releaseReservation(ctx context.Context, d *Draft) {
	if m.reserver == nil || !d.HasDateTime() {
		return
	}

	if err := m.reserver.Release(ctx, d.DentistID, *d.Date, *d.TimeSlot, d.SessionID); err != nil {
		m.logger.Warn("Draft %s: failed to release reservation: %v", d.SessionID, err)
	}
}

func slotIsAvailable(resp *get_available_slots.Response, slotTime types.TimeString) bool {
	for _, slot := range resp.Slots {
		if slot.StartTime.Equal(slotTime) {
			return slot.IsAvailable
		}
	}
	return false
}
