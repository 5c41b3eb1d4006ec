package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/pkg/dbmetrics"
	"github.com/salonkit/SK-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую встречу
// Если в контексте передана активная транзакция (через context.Value), использует её —
// это обязательный путь при создании с проверкой ёмкости слота (race condition)
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"tenant_id",
			"customer_id",
			"service_id",
			"staff_id",
			"scheduled_at",
			"duration_minutes",
			"status",
			"service_name",
			"notes",
		).
		Values(
			appt.TenantID,
			appt.CustomerID,
			appt.ServiceID,
			appt.StaffID,
			appt.ScheduledAt,
			appt.DurationMinutes,
			appt.Status,
			appt.ServiceName,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает встречу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns()...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	appt, err := scanAppointment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// IntervalsForDay получает интервалы занятости тенанта в полуоткрытом диапазоне
// [dayStart, dayEnd). Отмененные встречи исключаются на уровне запроса, чтобы
// через границу хранилища не проходили данные, не влияющие на ёмкость.
//
// Длительность берется из присоединенной записи услуги; NULL длительность
// заменяется на domain.DefaultServiceDurationMinutes с выставленным флагом
// DurationDefaulted — вызывающая сторона обязана видеть подстановку.
//
// Внутри транзакции строки встреч блокируются (FOR UPDATE OF a) — этот путь
// используется при создании встречи для атомарной проверки ёмкости.
func (r *Repository) IntervalsForDay(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) ([]domain.AppointmentInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"a.tenant_id",
		"a.scheduled_at",
		"s.duration_minutes",
		"a.status",
	).
		From("appointments a").
		LeftJoin("services s ON a.service_id = s.id").
		Where(squirrel.Eq{"a.tenant_id": tenantID}).
		Where(squirrel.NotEq{"a.status": string(domain.StatusCancelled)}).
		Where(squirrel.GtOrEq{"a.scheduled_at": dayStart}).
		Where(squirrel.Lt{"a.scheduled_at": dayEnd}).
		OrderBy("a.scheduled_at ASC")

	// FOR UPDATE только по appointments: nullable сторона outer join не блокируется
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: IntervalsForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: IntervalsForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.AppointmentInterval, 0)

	for rows.Next() {
		var interval domain.AppointmentInterval
		var duration sql.NullInt64

		err := rows.Scan(
			&interval.TenantID,
			&interval.Start,
			&duration,
			&interval.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: IntervalsForDay - scan row: %v", ErrScanRow, err)
		}

		if duration.Valid && duration.Int64 > 0 {
			interval.DurationMinutes = int(duration.Int64)
		} else {
			interval.DurationMinutes = domain.DefaultServiceDurationMinutes
			interval.DurationDefaulted = true
		}

		intervals = append(intervals, interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: IntervalsForDay - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// ListWithFilter получает встречи тенанта с гибкой фильтрацией
// Поддерживает фильтрацию по дате, статусу и включению отмененных встреч
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns()...).
		From("appointments").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	// Фильтрация по дате (полуоткрытый диапазон суток)
	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"scheduled_at": dayStart}).
			Where(squirrel.Lt{"scheduled_at": dayEnd})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("scheduled_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("scheduled_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Cancel отменяет встречу с указанием причины
// Отмена освобождает ёмкость слота — это единственный статус, не учитываемый
// при подсчете занятости
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func appointmentColumns() []string {
	return []string{
		"id",
		"tenant_id",
		"customer_id",
		"service_id",
		"staff_id",
		"scheduled_at",
		"duration_minutes",
		"status",
		"service_name",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	}
}

// scanAppointment сканирует одну строку в domain.Appointment
// scan — либо (*sql.Row).Scan, либо (*sql.Rows).Scan
func scanAppointment(scan func(dest ...interface{}) error) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&appt.ID,
		&appt.TenantID,
		&appt.CustomerID,
		&appt.ServiceID,
		&appt.StaffID,
		&appt.ScheduledAt,
		&appt.DurationMinutes,
		&appt.Status,
		&appt.ServiceName,
		&appt.Notes,
		&appt.CancellationReason,
		&appt.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}
