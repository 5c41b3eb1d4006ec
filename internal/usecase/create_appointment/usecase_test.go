package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/integrations/catalogservice"
	"github.com/salonkit/SK-AvailabilityService/internal/integrations/tenantservice"
	"github.com/salonkit/SK-AvailabilityService/pkg/ptr"
	"github.com/salonkit/SK-AvailabilityService/pkg/types"
)

type scheduleRepoMock struct {
	windowsFor func(ctx context.Context, tenantID string, weekday int) ([]domain.ScheduleWindow, error)
}

func (m *scheduleRepoMock) WindowsFor(ctx context.Context, tenantID string, weekday int) ([]domain.ScheduleWindow, error) {
	return m.windowsFor(ctx, tenantID, weekday)
}

type appointmentRepoMock struct {
	intervalsForDay func(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) ([]domain.AppointmentInterval, error)
	create          func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

func (m *appointmentRepoMock) IntervalsForDay(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) ([]domain.AppointmentInterval, error) {
	return m.intervalsForDay(ctx, tenantID, dayStart, dayEnd)
}

func (m *appointmentRepoMock) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	return m.create(ctx, appt)
}

type tenantClientMock struct {
	getTenant func(ctx context.Context, tenantID string) (*tenantservice.Tenant, error)
}

func (m *tenantClientMock) GetTenant(ctx context.Context, tenantID string) (*tenantservice.Tenant, error) {
	return m.getTenant(ctx, tenantID)
}

type catalogClientMock struct {
	getService func(ctx context.Context, tenantID string, serviceID int64) (*catalogservice.Service, error)
}

func (m *catalogClientMock) GetService(ctx context.Context, tenantID string, serviceID int64) (*catalogservice.Service, error) {
	return m.getService(ctx, tenantID, serviceID)
}

// txManagerMock выполняет функцию без реальной транзакции
type txManagerMock struct {
	calls int
}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type cacheInvalidatorMock struct {
	invalidateDay func(ctx context.Context, tenantID string, date time.Time) error
}

func (m *cacheInvalidatorMock) InvalidateDay(ctx context.Context, tenantID string, date time.Time) error {
	return m.invalidateDay(ctx, tenantID, date)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const (
	testTenantID  = "salon-1"
	testServiceID = int64(42)
)

// Понедельник 2026-09-07; "сейчас" — за неделю до него
var (
	testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func window(start, end string) domain.ScheduleWindow {
	return domain.ScheduleWindow{
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: true,
	}
}

func interval(t *testing.T, start string, durationMinutes int) domain.AppointmentInterval {
	t.Helper()

	startTime, err := types.TimeString(start).AnchorTo(testDate, time.UTC)
	require.NoError(t, err)

	return domain.AppointmentInterval{
		Start:           startTime,
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

type testEnv struct {
	scheduleRepo    *scheduleRepoMock
	appointmentRepo *appointmentRepoMock
	tenantClient    *tenantClientMock
	catalogClient   *catalogClientMock
	txManager       *txManagerMock
	useCase         *UseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		scheduleRepo: &scheduleRepoMock{
			windowsFor: func(context.Context, string, int) ([]domain.ScheduleWindow, error) {
				return []domain.ScheduleWindow{window("09:00", "18:00")}, nil
			},
		},
		appointmentRepo: &appointmentRepoMock{
			intervalsForDay: func(context.Context, string, time.Time, time.Time) ([]domain.AppointmentInterval, error) {
				return nil, nil
			},
			create: func(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
				created := *appt
				created.ID = 1
				return &created, nil
			},
		},
		tenantClient: &tenantClientMock{
			getTenant: func(context.Context, string) (*tenantservice.Tenant, error) {
				return &tenantservice.Tenant{ID: testTenantID, Timezone: "UTC", IsActive: true}, nil
			},
		},
		catalogClient: &catalogClientMock{
			getService: func(context.Context, string, int64) (*catalogservice.Service, error) {
				return &catalogservice.Service{
					ID:              testServiceID,
					TenantID:        testTenantID,
					Name:            "Haircut",
					DurationMinutes: ptr.Ptr(60),
					IsActive:        true,
				}, nil
			},
		},
		txManager: &txManagerMock{},
	}

	env.useCase = NewUseCase(
		env.scheduleRepo,
		env.appointmentRepo,
		env.tenantClient,
		env.catalogClient,
		env.txManager,
		nil,
		time.UTC,
		nopLogger{},
	)
	env.useCase.timeProvider = &fixedTimeProvider{now: testNow}

	return env
}

func validRequest() *Request {
	return &Request{
		CustomerID: 100,
		TenantID:   testTenantID,
		ServiceID:  testServiceID,
		Date:       testDate,
		StartTime:  types.TimeString("10:00"),
	}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	env := newTestEnv()

	resp, err := env.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), resp.ScheduledAt)
	assert.Equal(t, 1, env.txManager.calls)
}

func TestExecute_ValidationErrors(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero customer", func(r *Request) { r.CustomerID = 0 }},
		{"empty tenant", func(r *Request) { r.TenantID = "" }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"bad time format", func(r *Request) { r.StartTime = types.TimeString("25:99") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := env.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Date = testNow

	_, err := env.useCase.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_NoScheduleForDay(t *testing.T) {
	env := newTestEnv()
	env.scheduleRepo.windowsFor = func(context.Context, string, int) ([]domain.ScheduleWindow, error) {
		return nil, nil
	}

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoScheduleForDay)
}

func TestExecute_OutsideSchedule(t *testing.T) {
	env := newTestEnv()
	env.scheduleRepo.windowsFor = func(context.Context, string, int) ([]domain.ScheduleWindow, error) {
		return []domain.ScheduleWindow{window("09:00", "12:00")}, nil
	}

	cases := []struct {
		name  string
		start string
	}{
		{"before opening", "08:00"},
		{"does not fit before closing", "11:30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = types.TimeString(tc.start)

			_, err := env.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrOutsideSchedule)
		})
	}
}

func TestExecute_SlotConflictSingleResource(t *testing.T) {
	env := newTestEnv()
	env.appointmentRepo.intervalsForDay = func(context.Context, string, time.Time, time.Time) ([]domain.AppointmentInterval, error) {
		return []domain.AppointmentInterval{interval(t, "10:30", 60)}, nil
	}

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SecondResourceAbsorbsConflict(t *testing.T) {
	env := newTestEnv()
	env.scheduleRepo.windowsFor = func(context.Context, string, int) ([]domain.ScheduleWindow, error) {
		return []domain.ScheduleWindow{
			window("09:00", "18:00"),
			window("09:00", "18:00"),
		}, nil
	}
	env.appointmentRepo.intervalsForDay = func(context.Context, string, time.Time, time.Time) ([]domain.AppointmentInterval, error) {
		return []domain.AppointmentInterval{interval(t, "10:30", 60)}, nil
	}

	resp, err := env.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestExecute_TouchingAppointmentDoesNotConflict(t *testing.T) {
	env := newTestEnv()
	env.appointmentRepo.intervalsForDay = func(context.Context, string, time.Time, time.Time) ([]domain.AppointmentInterval, error) {
		// Заканчивается ровно в момент начала новой встречи
		return []domain.AppointmentInterval{interval(t, "09:00", 60)}, nil
	}

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_TenantNotFound(t *testing.T) {
	env := newTestEnv()
	env.tenantClient.getTenant = func(context.Context, string) (*tenantservice.Tenant, error) {
		return nil, tenantservice.ErrTenantNotFound
	}

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExecute_ServiceInactive(t *testing.T) {
	env := newTestEnv()
	env.catalogClient.getService = func(context.Context, string, int64) (*catalogservice.Service, error) {
		return nil, catalogservice.ErrServiceInactive
	}

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_RepoErrorWrappedAsInternal(t *testing.T) {
	env := newTestEnv()
	env.appointmentRepo.create = func(context.Context, *domain.Appointment) (*domain.Appointment, error) {
		return nil, errors.New("connection refused")
	}

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidatesCacheAfterCreate(t *testing.T) {
	env := newTestEnv()

	var invalidatedTenant string
	var invalidatedDate time.Time
	env.useCase.cache = &cacheInvalidatorMock{
		invalidateDay: func(_ context.Context, tenantID string, date time.Time) error {
			invalidatedTenant = tenantID
			invalidatedDate = date
			return nil
		},
	}

	_, err := env.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, testTenantID, invalidatedTenant)
	assert.Equal(t, testDate, invalidatedDate)
}

func TestExecute_CacheInvalidationFailureIsNotFatal(t *testing.T) {
	env := newTestEnv()
	env.useCase.cache = &cacheInvalidatorMock{
		invalidateDay: func(context.Context, string, time.Time) error {
			return errors.New("redis down")
		},
	}

	resp, err := env.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}
