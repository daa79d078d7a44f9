package clinicconfig

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ilyassrachouady/rdvdb-booking-service/internal/domain"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/dbmetrics"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/psqlbuilder"
	"github.com/ilyassrachouady/rdvdb-booking-service/pkg/types"
)

// DBExecutor общий интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"dentist_id",
	"service_id",
	"slot_duration_minutes",
	"max_concurrent_appointments",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации клиники: недельное расписание
// работы и настройки слотов (общие и per-услуга)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule получает недельное расписание работы клиники.
// Дни без строки в БД считаются закрытыми.
func (r *Repository) GetWeeklySchedule(ctx context.Context, dentistID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "is_open", "open_time", "close_time").
		From("clinic_schedule").
		Where(squirrel.Eq{"dentist_id": dentistID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := &domain.WeeklySchedule{}
	found := false

	for rows.Next() {
		var weekday int
		var day domain.DaySchedule
		var openTime, closeTime sql.Null[types.TimeString]

		if err := rows.Scan(&weekday, &day.IsOpen, &openTime, &closeTime); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan row: %v", ErrScanRow, err)
		}

		if openTime.Valid {
			day.OpenTime = &openTime.V
		}
		if closeTime.Valid {
			day.CloseTime = &closeTime.V
		}

		schedule.SetForWeekday(time.Weekday(weekday), day)
		found = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	if !found {
		return nil, ErrScheduleNotFound
	}

	return schedule, nil
}

// UpsertWeeklySchedule сохраняет недельное расписание работы клиники.
// Перезаписывает все семь дней — частичные обновления недоступны,
// чтобы расписание в БД всегда оставалось согласованным.
func (r *Repository) UpsertWeeklySchedule(ctx context.Context, dentistID int64, schedule *domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("clinic_schedule").
		Columns("dentist_id", "weekday", "is_open", "open_time", "close_time")

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := schedule.ForWeekday(weekday)
		insertBuilder = insertBuilder.Values(dentistID, int(weekday), day.IsOpen, day.OpenTime, day.CloseTime)
	}

	query, args, err := insertBuilder.
		Suffix(`ON CONFLICT (dentist_id, weekday) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertWeeklySchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertWeeklySchedule - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByDentistAndService получает конфигурацию слотов для конкретной
// пары (клиника, услуга). serviceID == nil означает общую конфигурацию клиники.
func (r *Repository) GetByDentistAndService(ctx context.Context, dentistID int64, serviceID *int64) (*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("clinic_slots_config").
		Where(squirrel.Eq{"dentist_id": dentistID})

	if serviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDentistAndService - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDentistAndService - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetConfigWithHierarchy получает конфигурацию слотов с учетом иерархии:
// сначала ищет конфигурацию для услуги, затем общую конфигурацию клиники.
// Одним запросом: строки с service_id NOT NULL сортируются первыми.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, dentistID int64, serviceID int64) (*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("clinic_slots_config").
		Where(squirrel.Eq{"dentist_id": dentistID}).
		Where(squirrel.Or{
			squirrel.Eq{"service_id": serviceID},
			squirrel.Eq{"service_id": nil},
		}).
		OrderBy("service_id ASC NULLS LAST").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := r.scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetAllByDentist получает все конфигурации слотов клиники.
// Общая конфигурация (service_id IS NULL) идёт первой.
func (r *Repository) GetAllByDentist(ctx context.Context, dentistID int64) ([]*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("clinic_slots_config").
		Where(squirrel.Eq{"dentist_id": dentistID}).
		OrderBy("service_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByDentist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByDentist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ClinicSlotsConfig, 0)
	for rows.Next() {
		cfg, err := r.scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByDentist - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByDentist - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет конфигурацию слотов.
// Уникальность пары (dentist_id, service_id) обеспечивается индексом БД.
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ClinicSlotsConfig) (*domain.ClinicSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Частичные уникальные индексы (service_id NULL / NOT NULL) требуют
	// разных ON CONFLICT целей
	conflictTarget := "(dentist_id, service_id)"
	if cfg.ServiceID == nil {
		conflictTarget = "(dentist_id) WHERE service_id IS NULL"
	}

	query, args, err := psqlbuilder.Insert("clinic_slots_config").
		Columns(
			"dentist_id",
			"service_id",
			"slot_duration_minutes",
			"max_concurrent_appointments",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			cfg.DentistID,
			cfg.ServiceID,
			cfg.SlotDurationMinutes,
			cfg.MaxConcurrentAppointments,
			cfg.AdvanceBookingDays,
			cfg.MinBookingNoticeMinutes,
		).
		Suffix(fmt.Sprintf(`ON CONFLICT %s DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			max_concurrent_appointments = EXCLUDED.max_concurrent_appointments,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`, conflictTarget)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// Delete удаляет конфигурацию слотов для услуги.
// serviceID == nil удаляет общую конфигурацию клиники.
func (r *Repository) Delete(ctx context.Context, dentistID int64, serviceID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("clinic_slots_config").
		Where(squirrel.Eq{"dentist_id": dentistID})

	if serviceID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"service_id": nil})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfig сканирует одну строку в конфигурацию слотов
func (r *Repository) scanConfig(row rowScanner) (*domain.ClinicSlotsConfig, error) {
	var cfg domain.ClinicSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.DentistID,
		&cfg.ServiceID,
		&cfg.SlotDurationMinutes,
		&cfg.MaxConcurrentAppointments,
		&cfg.AdvanceBookingDays,
		&cfg.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
