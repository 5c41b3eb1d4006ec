package schedules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/service/schedules/models"
	"github.com/salonkit/SK-AvailabilityService/pkg/types"
)

type repoMock struct {
	listByTenant func(ctx context.Context, tenantID string) ([]domain.ScheduleWindow, error)
	createBatch  func(ctx context.Context, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error)
}

func (m *repoMock) ListByTenant(ctx context.Context, tenantID string) ([]domain.ScheduleWindow, error) {
	return m.listByTenant(ctx, tenantID)
}

func (m *repoMock) CreateBatch(ctx context.Context, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error) {
	return m.createBatch(ctx, windows)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validCreateRequest() models.CreateScheduleRequest {
	return models.CreateScheduleRequest{
		TenantID: "salon-1",
		Windows: []models.WindowInput{
			{Weekday: 1, StartTime: types.TimeString("09:00"), EndTime: types.TimeString("18:00")},
		},
	}
}

func TestCreate_MarksWindowsAvailable(t *testing.T) {
	var gotWindows []domain.ScheduleWindow
	repo := &repoMock{
		createBatch: func(_ context.Context, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error) {
			gotWindows = windows
			return windows, nil
		},
	}

	svc := New(repo, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.Len(t, created, 1)

	assert.Equal(t, "salon-1", gotWindows[0].TenantID)
	assert.True(t, gotWindows[0].IsAvailable)
}

func TestCreate_AllowsMidnightClosing(t *testing.T) {
	repo := &repoMock{
		createBatch: func(_ context.Context, windows []domain.ScheduleWindow) ([]domain.ScheduleWindow, error) {
			return windows, nil
		},
	}
	svc := New(repo, nopLogger{})

	req := validCreateRequest()
	req.Windows[0].EndTime = types.TimeString("24:00")

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("24:00"), created[0].EndTime)
}

func TestCreate_ValidationErrors(t *testing.T) {
	repo := &repoMock{
		createBatch: func(context.Context, []domain.ScheduleWindow) ([]domain.ScheduleWindow, error) {
			t.Fatal("repository must not be called on invalid input")
			return nil, nil
		},
	}
	svc := New(repo, nopLogger{})

	cases := []struct {
		name   string
		mutate func(req *models.CreateScheduleRequest)
	}{
		{"empty tenant", func(r *models.CreateScheduleRequest) { r.TenantID = "" }},
		{"no windows", func(r *models.CreateScheduleRequest) { r.Windows = nil }},
		{"weekday below range", func(r *models.CreateScheduleRequest) { r.Windows[0].Weekday = -1 }},
		{"weekday above range", func(r *models.CreateScheduleRequest) { r.Windows[0].Weekday = 7 }},
		{"bad start time", func(r *models.CreateScheduleRequest) { r.Windows[0].StartTime = "9am" }},
		{"bad end time", func(r *models.CreateScheduleRequest) { r.Windows[0].EndTime = "25:00" }},
		{"start equals end", func(r *models.CreateScheduleRequest) {
			r.Windows[0].StartTime = "10:00"
			r.Windows[0].EndTime = "10:00"
		}},
		{"start after end", func(r *models.CreateScheduleRequest) {
			r.Windows[0].StartTime = "18:00"
			r.Windows[0].EndTime = "09:00"
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestListByTenant(t *testing.T) {
	repo := &repoMock{
		listByTenant: func(_ context.Context, tenantID string) ([]domain.ScheduleWindow, error) {
			return []domain.ScheduleWindow{{ID: 1, TenantID: tenantID, Weekday: 1}}, nil
		},
	}
	svc := New(repo, nopLogger{})

	windows, err := svc.ListByTenant(context.Background(), "salon-1")
	require.NoError(t, err)
	assert.Len(t, windows, 1)

	_, err = svc.ListByTenant(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByTenant_RepoError(t *testing.T) {
	repo := &repoMock{
		listByTenant: func(context.Context, string) ([]domain.ScheduleWindow, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := New(repo, nopLogger{})

	_, err := svc.ListByTenant(context.Background(), "salon-1")
	assert.ErrorIs(t, err, ErrInternal)
}
