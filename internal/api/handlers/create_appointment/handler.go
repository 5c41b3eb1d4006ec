package create_appointment

import (
	"errors"
	"net/http"

	"github.com/salonkit/SK-AvailabilityService/internal/api/handlers"
	"github.com/salonkit/SK-AvailabilityService/internal/api/middleware"
	createAppointment "github.com/salonkit/SK-AvailabilityService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgTenantNotFound     = "тенант не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна"
	msgNoSchedule         = "на выбранный день нет рабочего расписания"
	msgOutsideSchedule    = "встреча не помещается в рабочие часы"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgDateInPast         = "дата встречи уже прошла"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: customer_id=%d, tenant_id=%s, error=%v",
				customerID, req.TenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrTenantNotFound):
			h.logger.Warn("POST /appointments - Tenant not found: tenant_id=%s", req.TenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: tenant_id=%s, service_id=%d",
				req.TenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: tenant_id=%s, service_id=%d",
				req.TenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Date in past: customer_id=%d, date=%s", customerID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrNoScheduleForDay):
			h.logger.Warn("POST /appointments - No schedule for day: tenant_id=%s, date=%s", req.TenantID, req.Date)
			handlers.RespondBadRequest(w, msgNoSchedule)

		case errors.Is(err, createAppointment.ErrOutsideSchedule):
			h.logger.Warn("POST /appointments - Outside working hours: tenant_id=%s, date=%s, start=%s",
				req.TenantID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideSchedule)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: customer_id=%d, tenant_id=%s, date=%s, start=%s",
				customerID, req.TenantID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, tenant_id=%s, error=%v",
				customerID, req.TenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: id=%d, customer_id=%d, tenant_id=%s",
		result.ID, customerID, req.TenantID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
