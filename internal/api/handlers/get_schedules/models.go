package get_schedules

import "github.com/salonkit/SK-AvailabilityService/internal/domain"

// ScheduleListResponse HTTP response model
type ScheduleListResponse struct {
	TenantID string           `json:"tenantId"`
	Windows  []ScheduleWindow `json:"windows"`
}

// ScheduleWindow модель рабочего окна
type ScheduleWindow struct {
	ID          int64   `json:"id"`
	Weekday     int     `json:"weekday"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	StaffID     *string `json:"staffId,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

// FromDomainWindows конвертирует рабочие окна в HTTP response
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
