package patient

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/ptr"
)

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO patients").
		WithArgs(int64(10), "Анна Петрова", "+79991234567", "anna@example.com", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), nil))

	patient, err := repo.Upsert(context.Background(), &domain.Patient{
		DentistID: 10,
		Name:      "Анна Петрова",
		Phone:     "+79991234567",
		Email:     ptr.Ptr("anna@example.com"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), patient.ID)
	assert.Equal(t, "Анна Петрова", patient.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO patients").
		WillReturnError(assert.AnError)

	_, err = repo.Upsert(context.Background(), &domain.Patient{
		DentistID: 10,
		Name:      "Анна Петрова",
		Phone:     "+79991234567",
	})

	require.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM patients").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(patientColumns))

	_, err = repo.GetByID(context.Background(), 99)

	require.ErrorIs(t, err, ErrPatientNotFound)
}

func TestRepository_ListByDentist(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	rows := sqlmock.NewRows(patientColumns).
		AddRow(int64(1), int64(10), "Анна Петрова", "+79991234567", "anna@example.com", nil, nil).
		AddRow(int64(2), int64(10), "Борис Иванов", "+79997654321", nil, "аллергия на лидокаин", nil)

	mock.ExpectQuery("SELECT (.+) FROM patients").
		WithArgs(int64(10)).
		WillReturnRows(rows)

	patients, err := repo.ListByDentist(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "Анна Петрова", patients[0].Name)
	require.NotNil(t, patients[0].Email)
	assert.Equal(t, "anna@example.com", *patients[0].Email)
	assert.Nil(t, patients[1].Email)
	require.NotNil(t, patients[1].Notes)
	assert.Equal(t, "аллергия на лидокаин", *patients[1].Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
