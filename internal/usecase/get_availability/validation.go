package get_availability

import (
	"fmt"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Выполняется до любого обращения к хранилищам (fail fast)
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.IntervalMinutes < 0 {
		return fmt.Errorf("%w: intervalMinutes must not be negative", ErrInvalidInput)
	}

	if req.IntervalMinutes > 0 &&
		(req.IntervalMinutes < domain.MinSlotIntervalMinutes || req.IntervalMinutes > domain.MaxSlotIntervalMinutes) {
		return fmt.Errorf("%w: intervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	return nil
}

// validateDuration проверяет итоговую длительность услуги
func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration %d minutes is out of range [%d, %d]",
			ErrInvalidInput, durationMinutes, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}
