package request_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Mahamundra/Kalbook-sub000/internal/api/handlers"
	"github.com/Mahamundra/Kalbook-sub000/internal/api/middleware"
	requestReschedule "github.com/Mahamundra/Kalbook-sub000/internal/usecase/request_reschedule"
)

const (
	msgInvalidAppointmentID  = "некорректный ID записи"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "запись не найдена"
	msgForbidden             = "доступ запрещен"
	msgAppointmentCancelled  = "запись отменена"
	msgRescheduleNotAllowed  = "перенос записей клиентами отключен"
	msgNoOpReschedule        = "новое время совпадает с текущим"
	msgPendingRequestExists  = "по записи уже есть ожидающий запрос на перенос"
	msgSlotNoLongerAvailable = "выбранный временной слот недоступен"
	msgOutsideWorkingHours   = "слот вне рабочего графика"
	msgTooLateToBook         = "слишком поздно для переноса на этот слот"
	msgInvalidDate           = "некорректная дата переноса"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase RequestRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RequestRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actorID, appointmentID)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestReschedule.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requestReschedule.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/reschedule - Access denied: appointment_id=%d, actor_id=%d",
				appointmentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requestReschedule.ErrAppointmentCancelled):
			h.logger.Warn("POST /appointments/{id}/reschedule - Appointment cancelled: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessableEntity(w, msgAppointmentCancelled)

		case errors.Is(err, requestReschedule.ErrRescheduleNotAllowed):
			h.logger.Warn("POST /appointments/{id}/reschedule - Reschedule not allowed: appointment_id=%d", appointmentID)
			handlers.RespondForbidden(w, msgRescheduleNotAllowed)

		case errors.Is(err, requestReschedule.ErrNoOpReschedule):
			h.logger.Warn("POST /appointments/{id}/reschedule - No-op reschedule: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgNoOpReschedule)

		case errors.Is(err, requestReschedule.ErrPendingRequestExists):
			h.logger.Warn("POST /appointments/{id}/reschedule - Pending request exists: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgPendingRequestExists)

		case errors.Is(err, requestReschedule.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /appointments/{id}/reschedule - Slot not available: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgSlotNoLongerAvailable)

		case errors.Is(err, requestReschedule.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments/{id}/reschedule - Outside working hours: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, requestReschedule.ErrTooLateToBook):
			h.logger.Warn("POST /appointments/{id}/reschedule - Too late to reschedule: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, requestReschedule.ErrInvalidDate):
			h.logger.Warn("POST /appointments/{id}/reschedule - Invalid requested date: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, requestReschedule.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/reschedule - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ: 200 при авто-применении, 202 при ожидании подтверждения
	response := FromUseCaseResponse(result)

	status := http.StatusAccepted
	if result.Applied {
		status = http.StatusOK
	}

	h.logger.Info("POST /appointments/{id}/reschedule - Reschedule processed: appointment_id=%d, actor_id=%d, applied=%t",
		appointmentID, actorID, result.Applied)
	handlers.RespondJSON(w, status, response)
}
