package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	configRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/clinicconfig"
	serviceRepo "github.com/ilyassrachouady/rdvdb-booking-service/internal/infra/storage/service"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (s *stubAppointmentRepo) GetByDentistWithFilter(_ context.Context, _ domain.DentistAppointmentsFilter) ([]*domain.Appointment, error) {
	return s.appointments, nil
}

type stubConfigRepo struct {
	schedule *domain.WeeklySchedule
	config   *domain.ClinicSlotsConfig
}

func (s *stubConfigRepo) GetWeeklySchedule(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if s.schedule == nil {
		return nil, configRepo.ErrScheduleNotFound
	}
	return s.schedule, nil
}

func (s *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ int64) (*domain.ClinicSlotsConfig, error) {
	if s.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return s.config, nil
}

type stubServiceRepo struct {
	service *domain.Service
}

func (s *stubServiceRepo) GetByID(_ context.Context, _, _ int64) (*domain.Service, error) {
	if s.service == nil {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s.service, nil
}

type stubReservations struct {
	counts map[types.TimeString]int
}

func (s *stubReservations) CountForeign(_ context.Context, _ int64, _ time.Time, slotTime types.TimeString, _ string) (int, error) {
	return s.counts[slotTime], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

func openDay(open, close string) domain.DaySchedule {
	o := types.TimeString(open)
	c := types.TimeString(close)
	return domain.DaySchedule{IsOpen: true, OpenTime: &o, CloseTime: &c}
}

func weekdaysSchedule(open, close string) *domain.WeeklySchedule {
	day := openDay(open, close)
	return &domain.WeeklySchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
}

func newTestUseCase(
	appts *stubAppointmentRepo,
	cfg *stubConfigRepo,
	svc *stubServiceRepo,
	resv ReservationCounter,
	now time.Time,
) *UseCase {
	uc := NewUseCase(appts, cfg, svc, resv, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_GeneratesSlotsForOpenDay(t *testing.T) {
	// Понедельник, клиника работает 09:00-12:00, шаг 30 минут
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC) // пятница
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC) // понедельник

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 1,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1, Name: "Чистка"}},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[5].StartTime)

	for _, slot := range resp.Slots {
		assert.Equal(t, 30, slot.DurationMinutes)
		assert.Equal(t, 1, slot.Remaining)
		assert.Equal(t, 1, slot.Capacity)
	}
}

func TestExecute_BookedSlotHasNoSpots(t *testing.T) {
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{
			appointments: []*domain.Appointment{
				{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
			},
		},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 1,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		if slot.StartTime == "10:00" {
			assert.Equal(t, 0, slot.Remaining)
		} else {
			assert.Equal(t, 1, slot.Remaining, "slot %s", slot.StartTime)
		}
	}
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{
			appointments: []*domain.Appointment{
				{StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusCancelled},
			},
		},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 1,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.Equal(t, 1, slot.Remaining, "slot %s", slot.StartTime)
	}
}

func TestExecute_OverlappingLongAppointmentBlocksBothSlots(t *testing.T) {
	// Приём 10:00-11:00 при шаге 30 минут занимает слоты 10:00 и 10:30
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{
			appointments: []*domain.Appointment{
				{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
			},
		},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 1,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	require.NoError(t, err)

	occupied := map[types.TimeString]bool{"10:00": true, "10:30": true}
	for _, slot := range resp.Slots {
		if occupied[slot.StartTime] {
			assert.Equal(t, 0, slot.Remaining, "slot %s", slot.StartTime)
		} else {
			assert.Equal(t, 1, slot.Remaining, "slot %s", slot.StartTime)
		}
	}
}

func TestExecute_ClosedDayReturnsEmptySlots(t *testing.T) {
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) // воскресенье

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 1,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateReturnsError(t *testing.T) {
	now := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config:   &domain.ClinicSlotsConfig{SlotDurationMinutes: 30, MaxConcurrentAppointments: 1},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayFiltersByBookingNotice(t *testing.T) {
	// Сегодня 10:05, notice 60 минут: доступны слоты с 11:30
	now := time.Date(2025, 6, 16, 10, 5, 0, 0, time.UTC) // понедельник
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "18:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 1,
				MinBookingNoticeMinutes:   60,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[0].StartTime)
}

func TestExecute_ForeignReservationsReduceAvailability(t *testing.T) {
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 2,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		&stubReservations{counts: map[types.TimeString]int{"09:00": 1}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date, SessionID: "session-a"})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 1, resp.Slots[0].Remaining)
	assert.Equal(t, 2, resp.Slots[1].Remaining)
}

func TestExecute_DateBeyondAdvanceLimit(t *testing.T) {
	now := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 15)

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{
			schedule: weekdaysSchedule("09:00", "12:00"),
			config: &domain.ClinicSlotsConfig{
				SlotDurationMinutes:       30,
				MaxConcurrentAppointments: 1,
				AdvanceBookingDays:        14,
			},
		},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_UnknownServiceReturnsError(t *testing.T) {
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{schedule: weekdaysSchedule("09:00", "12:00")},
		&stubServiceRepo{},
		nil,
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		DentistID: 1,
		ServiceID: 99,
		Date:      time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DefaultConfigWhenNotConfigured(t *testing.T) {
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&stubAppointmentRepo{},
		&stubConfigRepo{schedule: weekdaysSchedule("09:00", "12:00")},
		&stubServiceRepo{service: &domain.Service{ID: 1}},
		nil,
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{DentistID: 1, ServiceID: 1, Date: date})
	require.NoError(t, err)

	// Дефолтный шаг 30 минут, одно место на слот
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, 1, resp.Slots[0].Capacity)
}
