package models

import (
	"fmt"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// AppointmentResponse модель встречи для вызывающей стороны
type AppointmentResponse struct {
	ID                 int64
	TenantID           string
	CustomerID         int64
	ServiceID          int64
	StaffID            *string
	ScheduledAt        time.Time
	DurationMinutes    int
	Status             string
	ServiceName        string
	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AppointmentListResponse список встреч
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse
	Total        int
}

// GetTenantAppointmentsRequest запрос списка встреч тенанта
type GetTenantAppointmentsRequest struct {
	TenantID         string
	Date             *time.Time
	Status           *string
	IncludeCancelled bool
}

// CancelAppointmentRequest запрос на отмену встречи
type CancelAppointmentRequest struct {
	CustomerID         int64
	CancellationReason string
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *GetTenantAppointmentsRequest) ToDomainFilter() (domain.TenantAppointmentsFilter, error) {
	filter := domain.TenantAppointmentsFilter{
		TenantID:         r.TenantID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return domain.TenantAppointmentsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return domain.AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// FromDomainAppointment конвертирует domain.Appointment в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		TenantID:           a.TenantID,
		CustomerID:         a.CustomerID,
		ServiceID:          a.ServiceID,
		StaffID:            a.StaffID,
		ScheduledAt:        a.ScheduledAt,
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список встреч в response
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	appointments := make([]*AppointmentResponse, len(list))
	for i, a := range list {
		appointments[i] = FromDomainAppointment(a)
	}

	return &AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	}
}
