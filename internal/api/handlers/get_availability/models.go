package get_availability

import (
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	getAvailability "github.com/salonkit/SK-AvailabilityService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TenantID        string          `json:"tenantId"`
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	DurationMinutes int             `json:"durationMinutes"`
	IntervalMinutes int             `json:"intervalMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель доступного слота
type AvailableSlot struct {
	Start   string  `json:"start"`
	End     string  `json:"end"`
	StaffID *string `json:"staffId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start:   slot.Start.Format(time.RFC3339),
			End:     slot.End.Format(time.RFC3339),
			StaffID: slot.StaffID,
		}
	}

	return &AvailabilityResponse{
		TenantID:        resp.TenantID,
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		IntervalMinutes: resp.IntervalMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(tenantID string, serviceID int64, dateStr string, intervalMinutes int) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		TenantID:        tenantID,
		ServiceID:       serviceID,
		Date:            date,
		IntervalMinutes: intervalMinutes,
	}, nil
}
