package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	appointmentRepo "github.com/salonkit/SK-AvailabilityService/internal/infra/storage/appointment"
	"github.com/salonkit/SK-AvailabilityService/internal/service/appointments/models"
)

type repoMock struct {
	getByID        func(ctx context.Context, id int64) (*domain.Appointment, error)
	listWithFilter func(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
	cancel         func(ctx context.Context, id int64, reason string) error
}

func (m *repoMock) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return m.getByID(ctx, id)
}

func (m *repoMock) ListWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	return m.listWithFilter(ctx, filter)
}

func (m *repoMock) Cancel(ctx context.Context, id int64, reason string) error {
	return m.cancel(ctx, id, reason)
}

type cacheInvalidatorMock struct {
	invalidateDay func(ctx context.Context, tenantID string, date time.Time) error
}

func (m *cacheInvalidatorMock) InvalidateDay(ctx context.Context, tenantID string, date time.Time) error {
	return m.invalidateDay(ctx, tenantID, date)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func confirmedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		TenantID:        "salon-1",
		CustomerID:      100,
		ServiceID:       42,
		ScheduledAt:     time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ServiceName:     "Haircut",
	}
}

func TestGetByID_OwnerOnly(t *testing.T) {
	repo := &repoMock{
		getByID: func(context.Context, int64) (*domain.Appointment, error) {
			return confirmedAppointment(), nil
		},
	}
	svc := NewService(repo, nil, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &repoMock{
		getByID: func(context.Context, int64) (*domain.Appointment, error) {
			return nil, appointmentRepo.ErrAppointmentNotFound
		},
	}
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 100)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_InvalidatesCacheForAppointmentDay(t *testing.T) {
	var cancelledID int64
	var cancelReason string
	repo := &repoMock{
		getByID: func(context.Context, int64) (*domain.Appointment, error) {
			return confirmedAppointment(), nil
		},
		cancel: func(_ context.Context, id int64, reason string) error {
			cancelledID = id
			cancelReason = reason
			return nil
		},
	}

	var invalidatedTenant string
	var invalidatedDate time.Time
	cache := &cacheInvalidatorMock{
		invalidateDay: func(_ context.Context, tenantID string, date time.Time) error {
			invalidatedTenant = tenantID
			invalidatedDate = date
			return nil
		},
	}

	svc := NewService(repo, cache, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		CustomerID:         100,
		CancellationReason: "клиент заболел",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), cancelledID)
	assert.Equal(t, "клиент заболел", cancelReason)
	assert.Equal(t, "salon-1", invalidatedTenant)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), invalidatedDate)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &repoMock{
		getByID: func(context.Context, int64) (*domain.Appointment, error) {
			t.Fatal("repository must not be called for too long cancellation reason")
			return nil, nil
		},
		cancel: func(context.Context, int64, string) error {
			t.Fatal("repository Cancel must not be called for too long cancellation reason")
			return nil
		},
	}
	svc := NewService(repo, nil, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		CustomerID:         100,
		CancellationReason: strings.Repeat("a", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	appt := confirmedAppointment()
	appt.Status = domain.StatusCancelled

	repo := &repoMock{
		getByID: func(context.Context, int64) (*domain.Appointment, error) {
			return appt, nil
		},
		cancel: func(context.Context, int64, string) error {
			t.Fatal("repository Cancel must not be called for already cancelled appointment")
			return nil
		},
	}
	svc := NewService(repo, nil, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{CustomerID: 100})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &repoMock{
		getByID: func(context.Context, int64) (*domain.Appointment, error) {
			return confirmedAppointment(), nil
		},
	}
	svc := NewService(repo, nil, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{CustomerID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetTenantAppointments_FilterConversion(t *testing.T) {
	var gotFilter domain.TenantAppointmentsFilter
	repo := &repoMock{
		listWithFilter: func(_ context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
			gotFilter = filter
			return []*domain.Appointment{confirmedAppointment()}, nil
		},
	}
	svc := NewService(repo, nil, nopLogger{})

	status := "confirmed"
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetTenantAppointments(context.Background(), &models.GetTenantAppointmentsRequest{
		TenantID: "salon-1",
		Date:     &date,
		Status:   &status,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "salon-1", gotFilter.TenantID)
	require.NotNil(t, gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *gotFilter.Status)
}

func TestGetTenantAppointments_UnknownStatus(t *testing.T) {
	repo := &repoMock{
		listWithFilter: func(context.Context, domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
			t.Fatal("repository must not be called for unknown status")
			return nil, nil
		},
	}
	svc := NewService(repo, nil, nopLogger{})

	status := "parked"
	_, err := svc.GetTenantAppointments(context.Background(), &models.GetTenantAppointmentsRequest{
		TenantID: "salon-1",
		Status:   &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
