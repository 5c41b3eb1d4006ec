package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/pkg/dbmetrics"
	"github.com/salonkit/SK-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий рабочих окон персонала (staff_schedules)
// Каждая строка — повторяющееся недельное окно одного ресурса;
// количество окон на день недели задает параллельную ёмкость
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

const windowColumns = "id, tenant_id, staff_id, day_of_week, start_time, end_time, is_available, created_at, updated_at"

// WindowsFor получает активные рабочие окна тенанта на день недели (0 = воскресенье)
// Пустой список — валидный результат: в этот день никто не работает
func (r *Repository) WindowsFor(ctx context.Context, tenantID string, weekday int) ([]domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("staff_schedules").
		Where(squirrel.Eq{
			"tenant_id":    tenantID,
			"day_of_week":  weekday,
			"is_available": true,
		}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: WindowsFor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: WindowsFor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// ListByTenant получает все рабочие окна тенанта (включая выключенные)
// Используется эндпоинтом управления расписанием
func (r *Repository) ListByTenant(ctx context.Context, tenantID string) ([]domain.ScheduleWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("staff_schedules").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("day_of_week ASC, start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// CreateBatch создает набор рабочих окон одним запросом
// Возвращает созданные окна с присвоенными ID
func (r *Repository) CreateBatch(ctx context.Context, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error) {
	if len(windows) == 0 {
		return []domain.ScheduleWindow{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("staff_schedules").
		Columns(
			"tenant_id",
			"staff_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_available",
		)

	for _, w := range windows {
		insertBuilder = insertBuilder.Values(
			w.TenantID,
			w.StaffID,
			w.Weekday,
			w.StartTime,
			w.EndTime,
			w.IsAvailable,
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING " + windowColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanWindows(rows)
}

// scanWindows сканирует результаты запроса в слайс рабочих окон
// Маппинг строгий: нечитаемое поле — ошибка, а не тихий дефолт
func (r *Repository) scanWindows(rows *sql.Rows) ([]domain.ScheduleWindow, error) {
	windows := make([]domain.ScheduleWindow, 0)

	for rows.Next() {
		var window domain.ScheduleWindow
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&window.ID,
			&window.TenantID,
			&window.StaffID,
			&window.Weekday,
			&window.StartTime,
			&window.EndTime,
			&window.IsAvailable,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %v", ErrScanRow, err)
		}

		window.CreatedAt = createdAt.Time
		window.UpdatedAt = updatedAt.Time

		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}
