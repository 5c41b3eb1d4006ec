package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	catalogClient "github.com/salonkit/SK-AvailabilityService/internal/integrations/catalogservice"
	tenantClient "github.com/salonkit/SK-AvailabilityService/internal/integrations/tenantservice"
)

// UseCase use case создания встречи
//
// Расчет доступности НЕ резервирует слот: список "свободных" слотов — свойство
// прочитанного снимка, а не гарантия. Настоящий инвариант ёмкости обеспечивается
// здесь: сериализуемая транзакция, блокировка встреч дня (FOR UPDATE), пересчет
// пересечений и условная вставка — одним атомарным шагом.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	tenantClient    TenantServiceClient
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	cache           CacheInvalidator
	timeProvider    TimeProvider
	defaultLocation *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil — инвалидация кеша выключается
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	tenantClient TenantServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	cacheInvalidator CacheInvalidator,
	defaultLocation *time.Location,
	logger Logger,
) *UseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}

	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		tenantClient:    tenantClient,
		catalogClient:   catalogClient,
		txManager:       txManager,
		cache:           cacheInvalidator,
		timeProvider:    &RealTimeProvider{},
		defaultLocation: defaultLocation,
		logger:          logger,
	}
}

// Execute выполняет use case создания встречи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, tenant=%s, service=%d, date=%s, time=%s",
		req.CustomerID, req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDateNotInPast(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 2. Получаем тенанта (активность + тайм-зона)
	tenant, err := uc.tenantClient.GetTenant(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, tenantClient.ErrTenantNotFound) {
			uc.logger.Warn("CreateAppointment: tenant id=%s not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get tenant id=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	loc := uc.resolveLocation(tenant.Timezone)

	// 3. Получаем услугу и её длительность
	service, err := uc.catalogClient.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrServiceInactive):
			uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
			return nil, ErrServiceInactive
		default:
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	durationMinutes := domain.DefaultServiceDurationMinutes
	if service.DurationMinutes != nil && *service.DurationMinutes > 0 {
		durationMinutes = *service.DurationMinutes
	} else {
		uc.logger.Warn("CreateAppointment: service id=%d has no duration, defaulting to %d minutes",
			req.ServiceID, durationMinutes)
	}

	scheduledAt, err := req.StartTime.AnchorTo(req.Date, loc)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid start time: %v", err)
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	var result *domain.Appointment

	// 4. Атомарная проверка ёмкости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Рабочие окна дня определяют ёмкость
		weekday := int(req.Date.Weekday())

		windows, err := uc.scheduleRepo.WindowsFor(txCtx, req.TenantID, weekday)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get schedule windows: %v", err)
			return fmt.Errorf("%w: failed to get schedule windows: %v", ErrInternal, err)
		}

		if len(windows) == 0 {
			uc.logger.Warn("CreateAppointment: no schedule windows for tenant=%s on weekday=%d",
				req.TenantID, weekday)
			return ErrNoScheduleForDay
		}

		// 4.2. Встреча обязана помещаться в границы окон
		if err := validateWithinSchedule(windows, req.StartTime, durationMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: schedule validation failed: %v", err)
			return err
		}

		// 4.3. Занятость дня с блокировкой строк (FOR UPDATE)
		dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		intervals, err := uc.appointmentRepo.IntervalsForDay(txCtx, req.TenantID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointment intervals: %v", err)
			return fmt.Errorf("%w: failed to get appointment intervals: %v", ErrInternal, err)
		}

		// 4.4. Пересчитываем пересечения под блокировкой
		startUnix := scheduledAt.Unix()
		endUnix := scheduledAt.Add(time.Duration(durationMinutes) * time.Minute).Unix()

		concurrent := 0
		for _, interval := range intervals {
			if interval.ConsumesCapacity() && interval.Overlaps(startUnix, endUnix) {
				concurrent++
			}
		}

		if concurrent >= len(windows) {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d spots taken",
				concurrent, len(windows))
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken", concurrent, len(windows))

		// 4.5. Создаем встречу с денормализацией данных услуги
		appt := &domain.Appointment{
			TenantID:        req.TenantID,
			CustomerID:      req.CustomerID,
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			ScheduledAt:     scheduledAt,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Инвалидируем кеш доступности за дату
	if uc.cache != nil {
		if err := uc.cache.InvalidateDay(ctx, req.TenantID, req.Date); err != nil {
			uc.logger.Warn("CreateAppointment: failed to invalidate availability cache: %v", err)
		}
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		TenantID:        result.TenantID,
		CustomerID:      result.CustomerID,
		ServiceID:       result.ServiceID,
		StaffID:         result.StaffID,
		ScheduledAt:     result.ScheduledAt,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

func (uc *UseCase) resolveLocation(timezone string) *time.Location {
	if timezone == "" {
		return uc.defaultLocation
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		uc.logger.Warn("CreateAppointment: unknown tenant timezone %q, using default: %v", timezone, err)
		return uc.defaultLocation
	}

	return loc
}
