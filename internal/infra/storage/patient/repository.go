package patient

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/dbmetrics"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/psqlbuilder"
)

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

var patientColumns = []string{
	"id",
	"dentist_id",
	"name",
	"phone",
	"email",
	"notes",
	"created_at",
}

// Repository репозиторий для работы с пациентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пациентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает пациента или возвращает существующего по (dentist_id, phone)
// Идемпотентная операция create-or-fetch: уникальный индекс (dentist_id, phone)
// гарантирует одну запись на номер даже при гонке двух параллельных бронирований.
// При повторном обращении контактные данные обновляются (последние побеждают),
// id остаётся стабильным.
func (r *Repository) Upsert(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("patients").
		Columns(
			"dentist_id",
			"name",
			"phone",
			"email",
			"notes",
		).
		Values(
			patient.DentistID,
			patient.Name,
			patient.Phone,
			patient.Email,
			patient.Notes,
		).
		Suffix(`ON CONFLICT (dentist_id, phone) DO UPDATE
			SET name = EXCLUDED.name,
			    email = COALESCE(EXCLUDED.email, patients.email),
			    notes = COALESCE(EXCLUDED.notes, patients.notes)
			RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	patient.CreatedAt = createdAt.Time

	return patient, nil
}

// GetByID получает пациента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	patient, err := r.scanPatient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan patient: %v", ErrScanRow, err)
	}

	return patient, nil
}

// GetByPhone получает пациента клиники по номеру телефона
// Телефон должен быть нормализован до поиска
func (r *Repository) GetByPhone(ctx context.Context, dentistID int64, phone string) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(squirrel.Eq{"dentist_id": dentistID, "phone": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	patient, err := r.scanPatient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan patient: %v", ErrScanRow, err)
	}

	return patient, nil
}

// ListByDentist получает всех пациентов клиники
func (r *Repository) ListByDentist(ctx context.Context, dentistID int64) ([]*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(squirrel.Eq{"dentist_id": dentistID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDentist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDentist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	patients := make([]*domain.Patient, 0)

	for rows.Next() {
		patient, err := r.scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDentist - scan row: %v", ErrScanRow, err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDentist - rows error: %v", ErrScanRow, err)
	}

	return patients, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanPatient(row rowScanner) (*domain.Patient, error) {
	var patient domain.Patient
	var createdAt sql.NullTime

	err := row.Scan(
		&patient.ID,
		&patient.DentistID,
		&patient.Name,
		&patient.Phone,
		&patient.Email,
		&patient.Notes,
		&createdAt,
	)

	if err != nil {
		return nil, err
	}

	patient.CreatedAt = createdAt.Time

	return &patient, nil
}
