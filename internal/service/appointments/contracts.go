package appointments

import (
	"context"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// CacheInvalidator интерфейс инвалидации кеша доступности (опционален)
type CacheInvalidator interface {
	InvalidateDay(ctx context.Context, tenantID string, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
