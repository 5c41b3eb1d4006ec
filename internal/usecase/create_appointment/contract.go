package create_appointment

import (
	"context"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/integrations/catalogservice"
	"github.com/salonkit/SK-AvailabilityService/internal/integrations/tenantservice"
)

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	WindowsFor(ctx context.Context, tenantID string, weekday int) ([]domain.ScheduleWindow, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	// IntervalsForDay внутри транзакции блокирует строки встреч (FOR UPDATE)
	IntervalsForDay(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) ([]domain.AppointmentInterval, error)
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// TenantServiceClient интерфейс клиента для TenantService
type TenantServiceClient interface {
	GetTenant(ctx context.Context, tenantID string) (*tenantservice.Tenant, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, tenantID string, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс менеджера сериализуемых транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator интерфейс инвалидации кеша доступности (опционален)
type CacheInvalidator interface {
	InvalidateDay(ctx context.Context, tenantID string, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
