package get_schedules

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonkit/SK-AvailabilityService/internal/api/handlers"
	"github.com/salonkit/SK-AvailabilityService/internal/service/schedules"
)

const (
	msgMissingTenantID = "ID тенанта обязателен"
)

type Handler struct {
	service SchedulesService
	logger  Logger
}

func NewHandler(service SchedulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /tenant/{tenantId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID := vars["tenantId"]
	if tenantID == "" {
		h.logger.Warn("GET /tenant/{id}/schedules - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	windows, err := h.service.ListByTenant(r.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /tenant/{id}/schedules - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgMissingTenantID)

		default:
			h.logger.Error("GET /tenant/{id}/schedules - Failed to list schedules: tenant_id=%s, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenant/{id}/schedules - Schedules retrieved: tenant_id=%s, count=%d", tenantID, len(windows))
	handlers.RespondJSON(w, http.StatusOK, FromDomainWindows(tenantID, windows))
}
