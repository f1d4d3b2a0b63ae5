package approve_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Mahamundra/Kalbook-sub000/internal/api/handlers"
	"github.com/Mahamundra/Kalbook-sub000/internal/api/middleware"
	approveReschedule "github.com/Mahamundra/Kalbook-sub000/internal/usecase/approve_reschedule"
)

const (
	msgInvalidRequestID      = "некорректный ID запроса на перенос"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgRequestNotFound       = "запрос на перенос не найден"
	msgAppointmentNotFound   = "запись не найдена"
	msgBusinessNotFound      = "бизнес не найден"
	msgForbidden             = "доступ запрещен"
	msgAlreadyResolved       = "запрос на перенос уже разрешён"
	msgAppointmentCancelled  = "запись отменена"
	msgSlotNoLongerAvailable = "запрошенный временной слот недоступен"
)

type Handler struct {
	useCase ApproveRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase ApproveRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedules/{requestId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем requestId из URL
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /reschedules/{id}/approve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reschedules/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &approveReschedule.Request{
		ActorID:   actorID,
		RequestID: requestID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveReschedule.ErrRequestNotFound):
			h.logger.Warn("POST /reschedules/{id}/approve - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, approveReschedule.ErrAppointmentNotFound):
			h.logger.Warn("POST /reschedules/{id}/approve - Appointment not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, approveReschedule.ErrBusinessNotFound):
			h.logger.Warn("POST /reschedules/{id}/approve - Business not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, approveReschedule.ErrAccessDenied):
			h.logger.Warn("POST /reschedules/{id}/approve - Access denied: request_id=%d, actor_id=%d",
				requestID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, approveReschedule.ErrAlreadyResolved):
			h.logger.Warn("POST /reschedules/{id}/approve - Already resolved: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, approveReschedule.ErrAppointmentCancelled):
			h.logger.Warn("POST /reschedules/{id}/approve - Appointment cancelled: request_id=%d", requestID)
			handlers.RespondUnprocessableEntity(w, msgAppointmentCancelled)

		case errors.Is(err, approveReschedule.ErrSlotNoLongerAvailable):
			// Запрос остаётся pending - администратор решает, что делать дальше
			h.logger.Warn("POST /reschedules/{id}/approve - Slot not available: request_id=%d", requestID)
			handlers.RespondConflict(w, msgSlotNoLongerAvailable)

		case errors.Is(err, approveReschedule.ErrInvalidInput):
			h.logger.Warn("POST /reschedules/{id}/approve - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /reschedules/{id}/approve - Failed to approve: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reschedules/{id}/approve - Reschedule approved: request_id=%d, appointment_id=%d, actor_id=%d",
		requestID, result.AppointmentID, actorID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
