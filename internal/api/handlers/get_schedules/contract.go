package get_schedules

import (
	"context"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

type SchedulesService interface {
	ListByTenant(ctx context.Context, tenantID string) ([]domain.ScheduleWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
