package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonkit/SK-AvailabilityService/internal/api/handlers"
	getAvailability "github.com/salonkit/SK-AvailabilityService/internal/usecase/get_availability"
)

const (
	msgMissingTenantID  = "ID тенанта обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInterval  = "некорректный шаг генерации слотов"
	msgTenantNotFound   = "тенант не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInactive  = "услуга недоступна"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /tenant/{tenantId}/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD), interval (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем tenantId из URL
	tenantID := vars["tenantId"]
	if tenantID == "" {
		h.logger.Warn("GET /tenant/{id}/availability - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /tenant/{id}/availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenant/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenant/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем interval из query параметров (опционально)
	intervalMinutes := 0
	if intervalStr := r.URL.Query().Get("interval"); intervalStr != "" {
		intervalMinutes, err = strconv.Atoi(intervalStr)
		if err != nil || intervalMinutes <= 0 {
			h.logger.Warn("GET /tenant/{id}/availability - Invalid interval: %v", intervalStr)
			handlers.RespondBadRequest(w, msgInvalidInterval)
			return
		}
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(tenantID, serviceID, dateStr, intervalMinutes)
	if err != nil {
		h.logger.Warn("GET /tenant/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /tenant/{id}/availability - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrTenantNotFound):
			h.logger.Warn("GET /tenant/{id}/availability - Tenant not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /tenant/{id}/availability - Service not found: tenant_id=%s, service_id=%d", tenantID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrServiceInactive):
			h.logger.Warn("GET /tenant/{id}/availability - Service inactive: tenant_id=%s, service_id=%d", tenantID, serviceID)
			handlers.RespondNotFound(w, msgServiceInactive)

		default:
			h.logger.Error("GET /tenant/{id}/availability - Failed to compute availability: tenant_id=%s, service_id=%d, error=%v",
				tenantID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /tenant/{id}/availability - Availability computed: tenant_id=%s, service_id=%d, date=%s, slots_count=%d",
		tenantID, serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
