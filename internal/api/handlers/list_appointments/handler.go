package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonkit/SK-AvailabilityService/internal/api/handlers"
	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/internal/service/appointments"
	"github.com/salonkit/SK-AvailabilityService/internal/service/appointments/models"
)

const (
	msgMissingTenantID = "ID тенанта обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter   = "некорректные параметры фильтрации"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /tenant/{tenantId}/appointments
// Query params: date (optional, YYYY-MM-DD), status (optional), includeCancelled (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID := vars["tenantId"]
	if tenantID == "" {
		h.logger.Warn("GET /tenant/{id}/appointments - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	req := &models.GetTenantAppointmentsRequest{
		TenantID: tenantID,
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /tenant/{id}/appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	if includeCancelled := r.URL.Query().Get("includeCancelled"); includeCancelled != "" {
		v, err := strconv.ParseBool(includeCancelled)
		if err != nil {
			h.logger.Warn("GET /tenant/{id}/appointments - Invalid includeCancelled: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.IncludeCancelled = v
	}

	result, err := h.service.GetTenantAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /tenant/{id}/appointments - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /tenant/{id}/appointments - Failed to list appointments: tenant_id=%s, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenant/{id}/appointments - Appointments retrieved: tenant_id=%s, count=%d",
		tenantID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
