package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	createdAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), createdAt, createdAt))

	appt, err := repo.Create(context.Background(), &domain.Appointment{
		DentistID:       10,
		PatientID:       42,
		ServiceID:       3,
		Date:            time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 30,
		Status:          domain.StatusPending,
		ServiceName:     "Чистка зубов",
		ServicePrice:    3500,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), appt.ID)
	assert.Equal(t, createdAt, appt.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err = repo.GetByID(context.Background(), 99)

	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_GetByDentistWithFilter_SingleDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(appointmentColumns).
		AddRow(int64(1), int64(10), int64(42), int64(3), day, "09:00", 30, "pending",
			"Чистка зубов", 3500.0, nil, nil, nil, nil, nil).
		AddRow(int64(2), int64(10), int64(43), int64(3), day, "10:30", 30, "confirmed",
			"Чистка зубов", 3500.0, nil, nil, nil, nil, nil)

	// Один день - сортировка по времени начала
	mock.ExpectQuery("SELECT (.+) FROM appointments (.+) ORDER BY start_time ASC").
		WillReturnRows(rows)

	appts, err := repo.GetByDentistWithFilter(context.Background(), domain.DentistAppointmentsFilter{
		DentistID: 10,
		StartDate: &day,
		EndDate:   &day,
	})

	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, types.TimeString("09:00"), appts[0].StartTime)
	assert.Equal(t, domain.StatusConfirmed, appts[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDentistWithFilter_PeriodOrdersNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM appointments (.+) ORDER BY appointment_date DESC, start_time DESC").
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	appts, err := repo.GetByDentistWithFilter(context.Background(), domain.DentistAppointmentsFilter{
		DentistID: 10,
		StartDate: &start,
		EndDate:   &end,
	})

	require.NoError(t, err)
	assert.Empty(t, appts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE appointments SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Cancel(context.Background(), 7, "пациент перенёс приём")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE appointments SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Cancel(context.Background(), 99, "")

	require.ErrorIs(t, err, ErrAppointmentNotFound)
}
