package clinicconfig

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/ptr"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

func TestRepository_GetWeeklySchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows([]string{"weekday", "is_open", "open_time", "close_time"}).
		AddRow(1, true, "09:00", "18:00").
		AddRow(0, false, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM clinic_schedule").
		WithArgs(int64(10)).
		WillReturnRows(rows)

	schedule, err := repo.GetWeeklySchedule(context.Background(), 10)

	require.NoError(t, err)
	assert.True(t, schedule.Monday.IsOpen)
	require.NotNil(t, schedule.Monday.OpenTime)
	assert.Equal(t, types.TimeString("09:00"), *schedule.Monday.OpenTime)
	assert.False(t, schedule.Sunday.IsOpen)
	assert.Nil(t, schedule.Sunday.OpenTime)
	// Дни без строки в БД считаются закрытыми
	assert.False(t, schedule.Wednesday.IsOpen)
}

func TestRepository_GetWeeklySchedule_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM clinic_schedule").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"weekday", "is_open", "open_time", "close_time"}))

	_, err = repo.GetWeeklySchedule(context.Background(), 10)

	require.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRepository_GetConfigWithHierarchy_PrefersServiceSpecific(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// NULLS LAST ставит переопределение услуги первым, LIMIT 1 его и возвращает
	rows := sqlmock.NewRows(configColumns).
		AddRow(int64(5), int64(10), int64(3), 60, 1, 30, 120, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM clinic_slots_config (.+) ORDER BY service_id ASC NULLS LAST LIMIT 1").
		WillReturnRows(rows)

	cfg, err := repo.GetConfigWithHierarchy(context.Background(), 10, 3)

	require.NoError(t, err)
	require.NotNil(t, cfg.ServiceID)
	assert.Equal(t, int64(3), *cfg.ServiceID)
	assert.Equal(t, 60, cfg.SlotDurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetConfigWithHierarchy_FallsBackToClinicWide(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows(configColumns).
		AddRow(int64(4), int64(10), nil, 30, 2, 60, 60, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM clinic_slots_config").
		WillReturnRows(rows)

	cfg, err := repo.GetConfigWithHierarchy(context.Background(), 10, 3)

	require.NoError(t, err)
	assert.Nil(t, cfg.ServiceID)
	assert.Equal(t, 2, cfg.MaxConcurrentAppointments)
}

func TestRepository_GetConfigWithHierarchy_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM clinic_slots_config").
		WillReturnRows(sqlmock.NewRows(configColumns))

	_, err = repo.GetConfigWithHierarchy(context.Background(), 10, 3)

	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestRepository_Upsert_ServiceOverride(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO clinic_slots_config (.+) ON CONFLICT \(dentist_id, service_id\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(5), nil, nil))

	cfg, err := repo.Upsert(context.Background(), &domain.ClinicSlotsConfig{
		DentistID:                 10,
		ServiceID:                 ptr.Ptr(int64(3)),
		SlotDurationMinutes:       60,
		MaxConcurrentAppointments: 1,
		AdvanceBookingDays:        30,
		MinBookingNoticeMinutes:   120,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_ClinicWideUsesPartialIndex(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	// Общая конфигурация конфликтует по частичному уникальному индексу
	mock.ExpectQuery(`INSERT INTO clinic_slots_config (.+) ON CONFLICT \(dentist_id\) WHERE service_id IS NULL DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(4), nil, nil))

	cfg, err := repo.Upsert(context.Background(), &domain.ClinicSlotsConfig{
		DentistID:                 10,
		SlotDurationMinutes:       30,
		MaxConcurrentAppointments: 2,
		AdvanceBookingDays:        60,
		MinBookingNoticeMinutes:   60,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), cfg.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM clinic_slots_config").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), 10, nil)

	require.ErrorIs(t, err, ErrConfigNotFound)
}
