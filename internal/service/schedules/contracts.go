package schedules

import (
	"context"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]domain.ScheduleWindow, error)
	CreateBatch(ctx context.Context, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
