package schedules

import (
	"context"
	"fmt"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/service/schedules/models"
)

type Service struct {
	repo   ScheduleRepository
	logger Logger
}

func New(repo ScheduleRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListByTenant возвращает все рабочие окна тенанта
func (s *Service) ListByTenant(ctx context.Context, tenantID string) ([]domain.ScheduleWindow, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: ListByTenant - tenantID is required", ErrInvalidInput)
	}

	windows, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListByTenant: failed to fetch schedule windows for tenant %s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListByTenant - %v", ErrInternal, err)
	}

	return windows, nil
}

// Create валидирует и сохраняет пачку рабочих окон тенанта
func (s *Service) Create(ctx context.Context, req models.CreateScheduleRequest) ([]domain.ScheduleWindow, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	windows := make([]domain.ScheduleWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		windows = append(windows, domain.ScheduleWindow{
			TenantID:    req.TenantID,
			Weekday:     w.Weekday,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			StaffID:     w.StaffID,
			IsAvailable: true,
		})
	}

	created, err := s.repo.CreateBatch(ctx, windows)
	if err != nil {
		s.logger.Error("Create: failed to create schedule windows for tenant %s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Create - %v", ErrInternal, err)
	}

	s.logger.Info("Create: created %d schedule windows for tenant %s", len(created), req.TenantID)
	return created, nil
}

func validateCreateRequest(req models.CreateScheduleRequest) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: Create - tenantID is required", ErrInvalidInput)
	}
	if len(req.Windows) == 0 {
		return fmt.Errorf("%w: Create - at least one window is required", ErrInvalidInput)
	}

	for i, w := range req.Windows {
		if w.Weekday < domain.MinWeekday || w.Weekday > domain.MaxWeekday {
			return fmt.Errorf("%w: Create - window %d: weekday must be between %d and %d",
				ErrInvalidInput, i, domain.MinWeekday, domain.MaxWeekday)
		}
		if _, err := w.StartTime.MinutesFromMidnight(); err != nil {
			return fmt.Errorf("%w: Create - window %d: invalid startTime: %v", ErrInvalidInput, i, err)
		}
		if _, err := w.EndTime.MinutesFromMidnight(); err != nil {
			return fmt.Errorf("%w: Create - window %d: invalid endTime: %v", ErrInvalidInput, i, err)
		}
		if !w.StartTime.IsBefore(w.EndTime) {
			return fmt.Errorf("%w: Create - window %d: startTime must be before endTime", ErrInvalidInput, i)
		}
	}

	return nil
}
