package create_schedule

import (
	"context"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/service/schedules/models"
)

type SchedulesService interface {
	Create(ctx context.Context, req models.CreateScheduleRequest) ([]domain.ScheduleWindow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
