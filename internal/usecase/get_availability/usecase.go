package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	cache "github.com/salonkit/SK-AvailabilityService/internal/infra/cache/availability"
	catalogClient "github.com/salonkit/SK-AvailabilityService/internal/integrations/catalogservice"
	tenantClient "github.com/salonkit/SK-AvailabilityService/internal/integrations/tenantservice"
)

// UseCase use case расчета доступных слотов
//
// Чистое вычисление запрос-ответ без состояния между вызовами. Снимки окон и
// встреч читаются заново на каждый запрос; транзакция не берется, поэтому
// конкурентная запись между двумя чтениями может дать устаревший, но внутренне
// консистентный список. Расчет НЕ резервирует слот — два конкурентных клиента
// могут получить один и тот же "свободный" слот; настоящий инвариант ёмкости
// обязан обеспечивать путь записи (create_appointment) атомарно.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	tenantClient    TenantServiceClient
	catalogClient   CatalogServiceClient
	cache           Cache
	metrics         Metrics
	defaultLocation *time.Location
	defaultInterval int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// cache и metrics могут быть nil — соответствующая функциональность выключается
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	tenantClient TenantServiceClient,
	catalogClient CatalogServiceClient,
	cacheImpl Cache,
	metricsImpl Metrics,
	defaultLocation *time.Location,
	defaultIntervalMinutes int,
	logger Logger,
) *UseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	if defaultIntervalMinutes <= 0 {
		defaultIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}

	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		tenantClient:    tenantClient,
		catalogClient:   catalogClient,
		cache:           cacheImpl,
		metrics:         metricsImpl,
		defaultLocation: defaultLocation,
		defaultInterval: defaultIntervalMinutes,
		logger:          logger,
	}
}

// Execute выполняет расчет доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tenant=%s, service=%d, date=%s, interval=%d",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.IntervalMinutes)

	// 1. Валидация входных данных до обращения к хранилищам
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	intervalMinutes := req.IntervalMinutes
	if intervalMinutes == 0 {
		intervalMinutes = uc.defaultInterval
	}

	// 2. Получаем тенанта (активность + тайм-зона)
	tenant, err := uc.tenantClient.GetTenant(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailability: tenant id=%s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailability: failed to get tenant id=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	loc := uc.resolveLocation(tenant.Timezone)

	// 3. Получаем услугу и её длительность
	service, err := uc.catalogClient.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrServiceInactive):
			uc.logger.Warn("GetAvailability: service id=%d is inactive", req.ServiceID)
			return nil, ErrServiceInactive
		default:
			uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	durationMinutes, defaulted := resolveDuration(service)
	if defaulted {
		// Подстановка дефолта — наблюдаемое событие качества данных
		uc.logger.Warn("GetAvailability: service id=%d has no duration, defaulting to %d minutes",
			req.ServiceID, durationMinutes)
		if uc.metrics != nil {
			uc.metrics.IncDurationDefaulted(req.TenantID)
		}
	}

	if err := validateDuration(durationMinutes); err != nil {
		uc.logger.Warn("GetAvailability: duration validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем кеш
	cacheKey := cache.Key(req.TenantID, req.Date, req.ServiceID, intervalMinutes)
	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, cacheKey); ok {
			if uc.metrics != nil {
				uc.metrics.IncCacheHit()
			}
			uc.logger.Info("GetAvailability: cache hit for tenant=%s, date=%s",
				req.TenantID, req.Date.Format(domain.DateFormat))
			return uc.buildResponse(req, durationMinutes, intervalMinutes, slots), nil
		}
		if uc.metrics != nil {
			uc.metrics.IncCacheMiss()
		}
	}

	// 5. Получаем рабочие окна на день недели
	weekday := int(req.Date.Weekday())

	windows, err := uc.scheduleRepo.WindowsFor(ctx, req.TenantID, weekday)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get schedule windows: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule windows: %v", ErrInternal, err)
	}

	// Никто не работает — валидный пустой результат; встречи не нужны
	if len(windows) == 0 {
		uc.logger.Info("GetAvailability: no schedule windows for tenant=%s on weekday=%d",
			req.TenantID, weekday)
		return uc.buildResponse(req, durationMinutes, intervalMinutes, []domain.Slot{}), nil
	}

	// 6. Получаем занятость на дату (полуоткрытые границы суток в зоне тенанта)
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	intervals, err := uc.appointmentRepo.IntervalsForDay(ctx, req.TenantID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointment intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointment intervals: %v", ErrInternal, err)
	}

	uc.observeDefaultedIntervals(req.TenantID, intervals)

	// 7. Генерируем слоты
	slots, err := generateSlots(windows, intervals, req.Date, loc, durationMinutes, intervalMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.AddSlotsGenerated(req.TenantID, len(slots))
	}

	// 8. Кешируем результат
	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKey, slots)
	}

	uc.logger.Info("GetAvailability: generated %d slots for tenant=%s, service=%d, date=%s",
		len(slots), req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return uc.buildResponse(req, durationMinutes, intervalMinutes, slots), nil
}

func (uc *UseCase) buildResponse(req *Request, durationMinutes, intervalMinutes int, slots []domain.Slot) *Response {
	return &Response{
		TenantID:        req.TenantID,
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		IntervalMinutes: intervalMinutes,
		Slots:           slots,
	}
}

// resolveLocation возвращает тайм-зону тенанта, либо дефолтную при пустой
// или некорректной
func (uc *UseCase) resolveLocation(timezone string) *time.Location {
	if timezone == "" {
		return uc.defaultLocation
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		uc.logger.Warn("GetAvailability: unknown tenant timezone %q, using default: %v", timezone, err)
		return uc.defaultLocation
	}

	return loc
}

// observeDefaultedIntervals логирует и считает встречи с подставленной
// дефолтной длительностью
func (uc *UseCase) observeDefaultedIntervals(tenantID string, intervals []domain.AppointmentInterval) {
	for _, interval := range intervals {
		if !interval.DurationDefaulted {
			continue
		}
		uc.logger.Warn("GetAvailability: appointment at %s has no service duration, defaulted to %d minutes",
			interval.Start.Format(time.RFC3339), interval.DurationMinutes)
		if uc.metrics != nil {
			uc.metrics.IncDurationDefaulted(tenantID)
		}
	}
}

// resolveDuration извлекает длительность услуги
// Если длительность не задана, возвращает именованный дефолт и флаг подстановки
func resolveDuration(service *catalogClient.Service) (int, bool) {
	if service.DurationMinutes == nil || *service.DurationMinutes <= 0 {
		return domain.DefaultServiceDurationMinutes, true
	}
	return *service.DurationMinutes, false
}
