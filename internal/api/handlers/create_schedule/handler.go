package create_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonkit/SK-AvailabilityService/internal/api/handlers"
	"github.com/salonkit/SK-AvailabilityService/internal/service/schedules"
)

const (
	msgMissingTenantID    = "ID тенанта обязателен"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /tenant/{tenantId}/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID := vars["tenantId"]
	if tenantID == "" {
		h.logger.Warn("POST /tenant/{id}/schedules - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	var req CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenant/{id}/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), req.ToServiceRequest(tenantID))
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /tenant/{id}/schedules - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /tenant/{id}/schedules - Failed to create schedules: tenant_id=%s, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenant/{id}/schedules - Schedules created: tenant_id=%s, count=%d", tenantID, len(created))
	handlers.RespondJSON(w, http.StatusCreated, FromDomainWindows(tenantID, created))
}
