package get_appointment

import (
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/service/appointments/models"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	TenantID           string  `json:"tenantId"`
	CustomerID         int64   `json:"customerId"`
	ServiceID          int64   `json:"serviceId"`
	StaffID            *string `json:"staffId"`
	ScheduledAt        string  `json:"scheduledAt"`
	DurationMinutes    int     `json:"durationMinutes"`
	Status             string  `json:"status"`
	ServiceName        string  `json:"serviceName"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(a *models.AppointmentResponse) *AppointmentResponse {
	var cancelledAt *string
	if a.CancelledAt != nil {
		s := a.CancelledAt.Format(time.RFC3339)
		cancelledAt = &s
	}

	return &AppointmentResponse{
		ID:                 a.ID,
		TenantID:           a.TenantID,
		CustomerID:         a.CustomerID,
		ServiceID:          a.ServiceID,
		StaffID:            a.StaffID,
		ScheduledAt:        a.ScheduledAt.Format(time.RFC3339),
		DurationMinutes:    a.DurationMinutes,
		Status:             a.Status,
		ServiceName:        a.ServiceName,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        cancelledAt,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}
}
