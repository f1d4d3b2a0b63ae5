package create_appointment

import (
	"errors"
	"net/http"

	"github.com/Mahamundra/Kalbook-sub000/internal/api/handlers"
	"github.com/Mahamundra/Kalbook-sub000/internal/api/middleware"
	createAppointment "github.com/Mahamundra/Kalbook-sub000/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgBusinessNotFound      = "бизнес не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgWorkerNotFound        = "работник не найден"
	msgCustomerNotFound      = "клиент не найден"
	msgServiceInactive       = "услуга недоступна"
	msgWorkerInactive        = "работник недоступен"
	msgWorkerNotEligible     = "работник не оказывает эту услугу"
	msgForbidden             = "доступ запрещен"
	msgOutsideWorkingHours   = "слот вне рабочего графика"
	msgTooLateToBook         = "слишком поздно для записи на этот слот"
	msgSlotNoLongerAvailable = "выбранный временной слот недоступен"
	msgInvalidDate           = "некорректная дата записи"
	msgInvalidInput          = "некорректные входные данные"
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

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /appointments - Slot not available: actor_id=%d, business_id=%d", actorID, req.BusinessID)
			handlers.RespondConflict(w, msgSlotNoLongerAvailable)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			h.logger.Warn("POST /appointments - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: business_id=%d, service_id=%d", req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrWorkerNotFound):
			h.logger.Warn("POST /appointments - Worker not found: business_id=%d, worker_id=%d", req.BusinessID, req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, createAppointment.ErrCustomerNotFound):
			h.logger.Warn("POST /appointments - Customer not found: actor_id=%d, business_id=%d", actorID, req.BusinessID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: business_id=%d, service_id=%d", req.BusinessID, req.ServiceID)
			handlers.RespondUnprocessableEntity(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrWorkerInactive):
			h.logger.Warn("POST /appointments - Worker inactive: business_id=%d, worker_id=%d", req.BusinessID, req.WorkerID)
			handlers.RespondUnprocessableEntity(w, msgWorkerInactive)

		case errors.Is(err, createAppointment.ErrWorkerNotEligible):
			h.logger.Warn("POST /appointments - Worker not eligible: business_id=%d, worker_id=%d, service_id=%d",
				req.BusinessID, req.WorkerID, req.ServiceID)
			handlers.RespondUnprocessableEntity(w, msgWorkerNotEligible)

		case errors.Is(err, createAppointment.ErrAccessDenied):
			h.logger.Warn("POST /appointments - Access denied: actor_id=%d, business_id=%d", actorID, req.BusinessID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: actor_id=%d, business_id=%d", actorID, req.BusinessID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: actor_id=%d, business_id=%d", actorID, req.BusinessID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: actor_id=%d, business_id=%d", actorID, req.BusinessID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: actor_id=%d, error=%v", actorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: actor_id=%d, business_id=%d, error=%v",
				actorID, req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, actor_id=%d, business_id=%d",
		result.ID, actorID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
