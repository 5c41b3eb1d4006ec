package models

import "github.com/salonkit/SK-AvailabilityService/pkg/types"

// WindowInput одно рабочее окно в запросе на создание расписания
type WindowInput struct {
	Weekday   int              `json:"weekday"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	StaffID   *string          `json:"staffId,omitempty"`
}

// CreateScheduleRequest запрос на создание рабочих окон тенанта
type CreateScheduleRequest struct {
	TenantID string
	Windows  []WindowInput
}
