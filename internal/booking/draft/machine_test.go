package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/create_appointment"
	"github.com/ilyassrachouady/rdvdb-booking-service/internal/usecase/get_available_slots"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

type stubSlotsProvider struct {
	slots []domain.TimeSlot
	err   error
}

func (s *stubSlotsProvider) Execute(_ context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &get_available_slots.Response{
		Date:      req.Date,
		DentistID: req.DentistID,
		ServiceID: req.ServiceID,
		Slots:     s.slots,
	}, nil
}

type stubCreator struct {
	resp     *create_appointment.Response
	err      error
	requests []*create_appointment.Request
}

func (s *stubCreator) Execute(_ context.Context, req *create_appointment.Request) (*create_appointment.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type stubReserver struct {
	reserved []string
	released []string
}

func (s *stubReserver) Reserve(_ context.Context, _ int64, _ time.Time, slotTime types.TimeString, _ string) error {
	s.reserved = append(s.reserved, slotTime.String())
	return nil
}

func (s *stubReserver) Release(_ context.Context, _ int64, _ time.Time, slotTime types.TimeString, _ string) error {
	s.released = append(s.released, slotTime.String())
	return nil
}

type stubAutofill struct {
	saved   map[string]domain.ContactInfo
	existed *domain.ContactInfo
}

func (s *stubAutofill) Save(_ context.Context, clientID string, contact domain.ContactInfo) error {
	if s.saved == nil {
		s.saved = make(map[string]domain.ContactInfo)
	}
	s.saved[clientID] = contact
	return nil
}

func (s *stubAutofill) Get(_ context.Context, _ string) (*domain.ContactInfo, error) {
	if s.existed == nil {
		return nil, errors.New("not found")
	}
	return s.existed, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func availableSlots(times ...string) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(times))
	for _, ts := range times {
		slots = append(slots, domain.TimeSlot{
			StartTime:       types.TimeString(ts),
			DurationMinutes: 30,
			Capacity:        1,
			Remaining:       1,
			IsAvailable:     true,
		})
	}
	return slots
}

var testDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

// advanceToDetails проводит черновик до шага ввода контактов
func advanceToDetails(t *testing.T, m *Machine, d *Draft) {
	t.Helper()
	require.NoError(t, m.SelectService(d, 1))
	require.NoError(t, m.SelectDateTime(context.Background(), d, testDate, "10:00"))
}

func TestMachine_HappyPath(t *testing.T) {
	creator := &stubCreator{resp: &create_appointment.Response{ID: 7, Status: "pending"}}
	reserver := &stubReserver{}

	m := NewMachine(
		&stubSlotsProvider{slots: availableSlots("09:00", "10:00")},
		creator,
		reserver,
		nil,
		"RU",
		nopLogger{},
	)

	d := m.Start(context.Background(), 1, "")
	assert.Equal(t, StateSelectingService, d.State)
	assert.NotEmpty(t, d.SessionID)

	require.NoError(t, m.SelectService(d, 1))
	assert.Equal(t, StateSelectingDateTime, d.State)

	require.NoError(t, m.SelectDateTime(context.Background(), d, testDate, "10:00"))
	assert.Equal(t, StateEnteringDetails, d.State)
	assert.Equal(t, []string{"10:00"}, reserver.reserved)

	require.NoError(t, m.EnterDetails(d, "Анна Петрова", "+79991234567", nil, nil, false))
	assert.Equal(t, StateReviewingConfirmation, d.State)
	assert.Equal(t, "+79991234567", d.PatientPhone)

	resp, err := m.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, StateSubmitted, d.State)
	require.NotNil(t, d.AppointmentID)
	assert.Equal(t, int64(7), *d.AppointmentID)

	// Резервация снята после отправки
	assert.Equal(t, []string{"10:00"}, reserver.released)
}

func TestMachine_CannotSkipSteps(t *testing.T) {
	m := NewMachine(&stubSlotsProvider{}, &stubCreator{}, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")

	err := m.SelectDateTime(context.Background(), d, testDate, "10:00")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = m.EnterDetails(d, "Анна", "+79991234567", nil, nil, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = m.Submit(context.Background(), d)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMachine_SelectServiceRequiresService(t *testing.T) {
	m := NewMachine(&stubSlotsProvider{}, &stubCreator{}, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")

	err := m.SelectService(d, 0)
	assert.ErrorIs(t, err, ErrIncompleteStep)
	assert.Equal(t, StateSelectingService, d.State)
}

func TestMachine_UnavailableSlotKeepsDateClearsSlot(t *testing.T) {
	// Слот 10:00 занят, 09:00 свободен
	slots := availableSlots("09:00", "10:00")
	slots[1].Remaining = 0
	slots[1].IsAvailable = false

	m := NewMachine(&stubSlotsProvider{slots: slots}, &stubCreator{}, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	require.NoError(t, m.SelectService(d, 1))

	err := m.SelectDateTime(context.Background(), d, testDate, "10:00")
	assert.ErrorIs(t, err, ErrSlotTaken)

	assert.Equal(t, StateSelectingDateTime, d.State)
	require.NotNil(t, d.Date)
	assert.Equal(t, testDate, *d.Date)
	assert.Nil(t, d.TimeSlot)
}

func TestMachine_InvalidPhoneBlocksDetails(t *testing.T) {
	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, &stubCreator{}, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)

	err := m.EnterDetails(d, "Анна", "12345", nil, nil, false)
	assert.ErrorIs(t, err, ErrInvalidPhone)
	assert.Equal(t, StateEnteringDetails, d.State)
}

func TestMachine_EmptyNameBlocksDetails(t *testing.T) {
	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, &stubCreator{}, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)

	err := m.EnterDetails(d, "   ", "+79991234567", nil, nil, false)
	assert.ErrorIs(t, err, ErrIncompleteStep)
}

func TestMachine_BackNavigation(t *testing.T) {
	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, &stubCreator{}, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)
	require.NoError(t, m.EnterDetails(d, "Анна", "+79991234567", nil, nil, false))

	ctx := context.Background()

	require.NoError(t, m.Back(ctx, d))
	assert.Equal(t, StateEnteringDetails, d.State)

	require.NoError(t, m.Back(ctx, d))
	assert.Equal(t, StateSelectingDateTime, d.State)

	require.NoError(t, m.Back(ctx, d))
	assert.Equal(t, StateSelectingService, d.State)

	// Дальше назад некуда
	assert.ErrorIs(t, m.Back(ctx, d), ErrInvalidTransition)

	// Заполненные поля сохранились
	assert.NotNil(t, d.ServiceID)
	assert.Equal(t, "Анна", d.PatientName)
}

func TestMachine_SubmitSlotTakenReturnsToDateTime(t *testing.T) {
	suggested := types.TimeString("10:30")
	creator := &stubCreator{err: &create_appointment.SlotUnavailableError{SuggestedTime: &suggested}}
	reserver := &stubReserver{}

	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, creator, reserver, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)
	require.NoError(t, m.EnterDetails(d, "Анна", "+79991234567", nil, nil, false))

	_, err := m.Submit(context.Background(), d)
	require.Error(t, err)
	assert.ErrorIs(t, err, create_appointment.ErrSlotNotAvailable)

	var slotErr *create_appointment.SlotUnavailableError
	require.True(t, errors.As(err, &slotErr))
	assert.Equal(t, &suggested, slotErr.SuggestedTime)

	// Черновик вернулся к выбору времени, дата сохранена, слот сброшен
	assert.Equal(t, StateSelectingDateTime, d.State)
	require.NotNil(t, d.Date)
	assert.Nil(t, d.TimeSlot)
	assert.Equal(t, []string{"10:00"}, reserver.released)
}

func TestMachine_SubmitFailureAllowsRetry(t *testing.T) {
	creator := &stubCreator{err: errors.New("storage down")}

	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, creator, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)
	require.NoError(t, m.EnterDetails(d, "Анна", "+79991234567", nil, nil, false))

	_, err := m.Submit(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, StateFailed, d.State)

	require.NoError(t, m.Retry(d))
	assert.Equal(t, StateReviewingConfirmation, d.State)

	// Повторная отправка после восстановления хранилища
	creator.err = nil
	creator.resp = &create_appointment.Response{ID: 9}

	_, err = m.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, d.State)
}

func TestMachine_SubmittedDraftIsImmutable(t *testing.T) {
	creator := &stubCreator{resp: &create_appointment.Response{ID: 7}}

	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, creator, nil, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)
	require.NoError(t, m.EnterDetails(d, "Анна", "+79991234567", nil, nil, false))

	_, err := m.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.ErrorIs(t, m.SelectService(d, 2), ErrTerminalState)
	assert.ErrorIs(t, m.Back(context.Background(), d), ErrTerminalState)
}

func TestMachine_AutofillSavedOnConsent(t *testing.T) {
	creator := &stubCreator{resp: &create_appointment.Response{ID: 7}}
	autofill := &stubAutofill{}

	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, creator, nil, autofill, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "client-1")
	advanceToDetails(t, m, d)
	require.NoError(t, m.EnterDetails(d, "Анна", "+79991234567", nil, nil, true))

	_, err := m.Submit(context.Background(), d)
	require.NoError(t, err)

	saved, ok := autofill.saved["client-1"]
	require.True(t, ok)
	assert.Equal(t, "Анна", saved.Name)
	assert.Equal(t, "+79991234567", saved.Phone)
}

func TestMachine_AutofillNotSavedWithoutConsent(t *testing.T) {
	creator := &stubCreator{resp: &create_appointment.Response{ID: 7}}
	autofill := &stubAutofill{}

	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, creator, nil, autofill, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "client-1")
	advanceToDetails(t, m, d)
	require.NoError(t, m.EnterDetails(d, "Анна", "+79991234567", nil, nil, false))

	_, err := m.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Empty(t, autofill.saved)
}

func TestMachine_StartPrefillsFromAutofill(t *testing.T) {
	email := "anna@example.com"
	autofill := &stubAutofill{existed: &domain.ContactInfo{
		Name:  "Анна Петрова",
		Phone: "+79991234567",
		Email: &email,
	}}

	m := NewMachine(&stubSlotsProvider{}, &stubCreator{}, nil, autofill, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "client-1")

	assert.Equal(t, "Анна Петрова", d.PatientName)
	assert.Equal(t, "+79991234567", d.PatientPhone)
	require.NotNil(t, d.PatientEmail)
	assert.Equal(t, email, *d.PatientEmail)
}

func TestMachine_AbandonReleasesReservation(t *testing.T) {
	reserver := &stubReserver{}

	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, &stubCreator{}, reserver, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)

	m.Abandon(context.Background(), d)
	assert.Equal(t, []string{"10:00"}, reserver.released)
}

func TestMachine_BackFromDetailsReleasesReservation(t *testing.T) {
	reserver := &stubReserver{}

	m := NewMachine(&stubSlotsProvider{slots: availableSlots("10:00")}, &stubCreator{}, reserver, nil, "RU", nopLogger{})
	d := m.Start(context.Background(), 1, "")
	advanceToDetails(t, m, d)

	require.NoError(t, m.Back(context.Background(), d))
	assert.Equal(t, []string{"10:00"}, reserver.released)
}
