package domain

import (
	"time"

	"github.com/salonkit/SK-AvailabilityService/pkg/types"
)

// ScheduleWindow represents one resource's recurring working hours on a weekday.
// Multiple windows on the same weekday mean parallel capacity: N staff working
// the same hours allow N simultaneous appointments.
type ScheduleWindow struct {
	ID          int64
	TenantID    string
	Weekday     int // 0 = Sunday ... 6 = Saturday
	StartTime   types.TimeString
	EndTime     types.TimeString
	StaffID     *string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScheduleBounds возвращает границы генерации слотов по всем окнам дня:
// минимальное начало и максимальный конец. Пустой список окон — ok=false.
func ScheduleBounds(windows []ScheduleWindow) (earliest, latest types.TimeString, ok bool) {
	if len(windows) == 0 {
		return "", "", false
	}

	earliest = windows[0].StartTime
	latest = windows[0].EndTime

	for _, w := range windows[1:] {
		if w.StartTime.IsBefore(earliest) {
			earliest = w.StartTime
		}
		if w.EndTime.IsAfter(latest) {
			latest = w.EndTime
		}
	}

	return earliest, latest, true
}
