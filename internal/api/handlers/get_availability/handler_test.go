package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	getAvailability "github.com/salonkit/SK-AvailabilityService/internal/usecase/get_availability"
)

type useCaseMock struct {
	execute func(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

func (m *useCaseMock) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	return m.execute(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestRouter(uc GetAvailabilityUseCase) *mux.Router {
	h := NewHandler(uc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/tenant/{tenantId}/availability", h.Handle).Methods(http.MethodGet)
	return r
}

func doRequest(t *testing.T, router *mux.Router, url string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	var gotReq *getAvailability.Request

	uc := &useCaseMock{
		execute: func(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			gotReq = req
			return &getAvailability.Response{
				TenantID:        req.TenantID,
				Date:            req.Date,
				ServiceID:       req.ServiceID,
				DurationMinutes: 60,
				IntervalMinutes: 30,
				Slots: []domain.Slot{{
					Start: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
					End:   time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
				}},
			}, nil
		},
	}

	rec := doRequest(t, newTestRouter(uc),
		"/api/v1/tenant/salon-1/availability?serviceId=42&date=2026-09-07")

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, gotReq)
	assert.Equal(t, "salon-1", gotReq.TenantID)
	assert.Equal(t, int64(42), gotReq.ServiceID)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), gotReq.Date)
	assert.Equal(t, 0, gotReq.IntervalMinutes)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "2026-09-07", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2026-09-07T09:00:00Z", resp.Slots[0].Start)
	assert.Equal(t, "2026-09-07T10:00:00Z", resp.Slots[0].End)
	assert.Nil(t, resp.Slots[0].StaffID)
}

func TestHandle_IntervalParamPassedThrough(t *testing.T) {
	var gotInterval int
	uc := &useCaseMock{
		execute: func(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			gotInterval = req.IntervalMinutes
			return &getAvailability.Response{Slots: []domain.Slot{}}, nil
		},
	}

	rec := doRequest(t, newTestRouter(uc),
		"/api/v1/tenant/salon-1/availability?serviceId=42&date=2026-09-07&interval=15")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15, gotInterval)
}

func TestHandle_BadRequests(t *testing.T) {
	uc := &useCaseMock{
		execute: func(context.Context, *getAvailability.Request) (*getAvailability.Response, error) {
			t.Fatal("use case must not be called on invalid params")
			return nil, nil
		},
	}
	router := newTestRouter(uc)

	cases := []struct {
		name string
		url  string
	}{
		{"missing serviceId", "/api/v1/tenant/salon-1/availability?date=2026-09-07"},
		{"bad serviceId", "/api/v1/tenant/salon-1/availability?serviceId=abc&date=2026-09-07"},
		{"missing date", "/api/v1/tenant/salon-1/availability?serviceId=42"},
		{"bad date format", "/api/v1/tenant/salon-1/availability?serviceId=42&date=07.09.2026"},
		{"impossible date", "/api/v1/tenant/salon-1/availability?serviceId=42&date=2026-02-30"},
		{"bad interval", "/api/v1/tenant/salon-1/availability?serviceId=42&date=2026-09-07&interval=abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, tc.url)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_UseCaseErrorsMapped(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", getAvailability.ErrInvalidInput, http.StatusBadRequest},
		{"tenant not found", getAvailability.ErrTenantNotFound, http.StatusNotFound},
		{"service not found", getAvailability.ErrServiceNotFound, http.StatusNotFound},
		// Неактивная услуга для вызывающей стороны неотличима от несуществующей
		{"service inactive", getAvailability.ErrServiceInactive, http.StatusNotFound},
		{"internal", getAvailability.ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &useCaseMock{
				execute: func(context.Context, *getAvailability.Request) (*getAvailability.Response, error) {
					return nil, tc.err
				},
			}

			rec := doRequest(t, newTestRouter(uc),
				"/api/v1/tenant/salon-1/availability?serviceId=42&date=2026-09-07")

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandle_EmptySlotsSerializedAsArray(t *testing.T) {
	uc := &useCaseMock{
		execute: func(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
			return &getAvailability.Response{
				TenantID:        req.TenantID,
				Date:            req.Date,
				ServiceID:       req.ServiceID,
				DurationMinutes: 60,
				IntervalMinutes: 30,
				Slots:           []domain.Slot{},
			}, nil
		},
	}

	rec := doRequest(t, newTestRouter(uc),
		"/api/v1/tenant/salon-1/availability?serviceId=42&date=2026-09-07")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}
