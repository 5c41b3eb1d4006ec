package create_schedule

import (
	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/service/schedules/models"
	"github.com/salonkit/SK-AvailabilityService/pkg/types"
)

// CreateScheduleRequest HTTP request model
type CreateScheduleRequest struct {
	Windows []WindowInput `json:"windows"`
}

// WindowInput одно рабочее окно в запросе
type WindowInput struct {
	Weekday   int     `json:"weekday"`
	StartTime string  `json:"startTime"` // "09:00"
	EndTime   string  `json:"endTime"`   // "18:00"
	StaffID   *string `json:"staffId,omitempty"`
}

// ScheduleListResponse HTTP response model
type ScheduleListResponse struct {
	TenantID string           `json:"tenantId"`
	Windows  []ScheduleWindow `json:"windows"`
}

// ScheduleWindow модель созданного рабочего окна
type ScheduleWindow struct {
	ID          int64   `json:"id"`
	Weekday     int     `json:"weekday"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	StaffID     *string `json:"staffId,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateScheduleRequest) ToServiceRequest(tenantID string) models.CreateScheduleRequest {
	windows := make([]models.WindowInput, len(r.Windows))
	for i, w := range r.Windows {
		windows[i] = models.WindowInput{
			Weekday:   w.Weekday,
			StartTime: types.TimeString(w.StartTime),
			EndTime:   types.TimeString(w.EndTime),
			StaffID:   w.StaffID,
		}
	}

	return models.CreateScheduleRequest{
		TenantID: tenantID,
		Windows:  windows,
	}
}

// FromDomainWindows конвертирует созданные окна в HTTP response
func FromDomainWindows(tenantID string, windows []domain.ScheduleWindow) *ScheduleListResponse {
	result := make([]ScheduleWindow, len(windows))
	for i, w := range windows {
		result[i] = ScheduleWindow{
			ID:          w.ID,
			Weekday:     w.Weekday,
			StartTime:   w.StartTime.String(),
			EndTime:     w.EndTime.String(),
			StaffID:     w.StaffID,
			IsAvailable: w.IsAvailable,
		}
	}

	return &ScheduleListResponse{
		TenantID: tenantID,
		Windows:  result,
	}
}
