package list_appointments

import (
	"context"

	"github.com/salonkit/SK-AvailabilityService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetTenantAppointments(ctx context.Context, req *models.GetTenantAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
