package get_availability

import (
	"context"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/integrations/catalogservice"
	"github.com/salonkit/SK-AvailabilityService/internal/integrations/tenantservice"
)

// ScheduleRepository интерфейс репозитория рабочих окон
type ScheduleRepository interface {
	// WindowsFor получает активные рабочие окна тенанта на день недели (0 = воскресенье)
	WindowsFor(ctx context.Context, tenantID string, weekday int) ([]domain.ScheduleWindow, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	// IntervalsForDay получает интервалы занятости тенанта в диапазоне [dayStart, dayEnd)
	// Отмененные встречи исключены на уровне запроса
	IntervalsForDay(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) ([]domain.AppointmentInterval, error)
}

// TenantServiceClient интерфейс клиента для TenantService
type TenantServiceClient interface {
	GetTenant(ctx context.Context, tenantID string) (*tenantservice.Tenant, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, tenantID string, serviceID int64) (*catalogservice.Service, error)
}

// Cache интерфейс кеша результатов расчета (опционален, nil — кеш выключен)
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Slot, bool)
	Set(ctx context.Context, key string, slots []domain.Slot)
}

// Metrics интерфейс доменных метрик расчета (опционален, nil — метрики выключены)
type Metrics interface {
	IncCacheHit()
	IncCacheMiss()
	IncDurationDefaulted(tenantID string)
	AddSlotsGenerated(tenantID string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
