package reject_reschedule

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Mahamundra/Kalbook-sub000/internal/api/handlers"
	"github.com/Mahamundra/Kalbook-sub000/internal/api/middleware"
	rejectReschedule "github.com/Mahamundra/Kalbook-sub000/internal/usecase/reject_reschedule"
)

const (
	msgInvalidRequestID    = "некорректный ID запроса на перенос"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgRequestNotFound     = "запрос на перенос не найден"
	msgAppointmentNotFound = "запись не найдена"
	msgBusinessNotFound    = "бизнес не найден"
	msgForbidden           = "доступ запрещен"
	msgAlreadyResolved     = "запрос на перенос уже разрешён"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	useCase RejectRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RejectRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reschedules/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем requestId из URL
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /reschedules/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reschedules/{id}/reject - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body (пустое тело допустимо - сообщение опционально)
	var req RejectRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /reschedules/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &rejectReschedule.Request{
		ActorID:   actorID,
		RequestID: requestID,
		Message:   req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectReschedule.ErrRequestNotFound):
			h.logger.Warn("POST /reschedules/{id}/reject - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, rejectReschedule.ErrAppointmentNotFound):
			h.logger.Warn("POST /reschedules/{id}/reject - Appointment not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rejectReschedule.ErrBusinessNotFound):
			h.logger.Warn("POST /reschedules/{id}/reject - Business not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, rejectReschedule.ErrAccessDenied):
			h.logger.Warn("POST /reschedules/{id}/reject - Access denied: request_id=%d, actor_id=%d",
				requestID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rejectReschedule.ErrAlreadyResolved):
			h.logger.Warn("POST /reschedules/{id}/reject - Already resolved: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, rejectReschedule.ErrInvalidInput):
			h.logger.Warn("POST /reschedules/{id}/reject - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reschedules/{id}/reject - Failed to reject: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reschedules/{id}/reject - Reschedule rejected: request_id=%d, appointment_id=%d, actor_id=%d",
		requestID, result.AppointmentID, actorID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
