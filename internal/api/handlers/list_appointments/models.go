package list_appointments

import (
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/service/appointments/models"
)

// AppointmentListResponse HTTP response model
type AppointmentListResponse struct {
	Appointments []AppointmentItem `json:"appointments"`
	Total        int               `json:"total"`
}

// AppointmentItem элемент списка встреч
type AppointmentItem struct {
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
	CreatedAt          string  `json:"createdAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentListResponse) *AppointmentListResponse {
	items := make([]AppointmentItem, len(resp.Appointments))
	for i, a := range resp.Appointments {
		items[i] = AppointmentItem{
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
			CreatedAt:          a.CreatedAt.Format(time.RFC3339),
		}
	}

	return &AppointmentListResponse{
		Appointments: items,
		Total:        resp.Total,
	}
}
