package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	appointmentRepo "github.com/salonkit/SK-AvailabilityService/internal/infra/storage/appointment"
	"github.com/salonkit/SK-AvailabilityService/internal/service/appointments/models"
)

// Service сервис для работы со встречами
type Service struct {
	appointmentRepo AppointmentRepository
	cache           CacheInvalidator
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
// cache может быть nil — инвалидация кеша выключается
func NewService(
	repo AppointmentRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: repo,
		cache:           cache,
		logger:          logger,
	}
}

// GetByID получает встречу по ID
// Клиент может видеть только свою встречу
func (s *Service) GetByID(ctx context.Context, id int64, customerID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for customer=%d", id, customerID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.CustomerID != customerID {
		s.logger.Warn("GetByID: access denied for customer=%d to appointment id=%d", customerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetTenantAppointments получает встречи тенанта с фильтрацией по дате и статусу
func (s *Service) GetTenantAppointments(ctx context.Context, req *models.GetTenantAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetTenantAppointments: fetching appointments for tenant=%s", req.TenantID)

	if req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantAppointments: invalid filter for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantAppointments: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTenantAppointments: fetched %d appointments for tenant=%s", len(list), req.TenantID)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет встречу клиента
// Отмена — единственный способ освободить ёмкость слота; после неё кеш
// доступности за дату встречи инвалидируется
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by customer=%d", id, req.CustomerID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: Cancel - cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.CustomerID != req.CustomerID {
		s.logger.Warn("Cancel: access denied for customer=%d to appointment id=%d", req.CustomerID, id)
		return ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDay(ctx, appt.TenantID, appt.ScheduledAt); err != nil {
			s.logger.Warn("Cancel: failed to invalidate availability cache: %v", err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return nil
}
