package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Mahamundra/Kalbook-sub000/internal/api/handlers"
	getAvailability "github.com/Mahamundra/Kalbook-sub000/internal/usecase/get_availability"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingServiceID  = "ID услуги обязателен"
	msgInvalidWorkerID   = "некорректный ID работника"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound  = "бизнес не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgWorkerNotFound    = "работник не найден"
	msgServiceInactive   = "услуга недоступна"
	msgWorkerInactive    = "работник недоступен"
	msgWorkerNotEligible = "работник не оказывает эту услугу"
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

// Handle GET /api/v1/businesses/{businessId}/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD), workerId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessIDStr := vars["businessId"]
	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /businesses/{id}/availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем workerId из query параметров (опционально)
	var workerID *int64
	if workerIDStr := r.URL.Query().Get("workerId"); workerIDStr != "" {
		id, err := strconv.ParseInt(workerIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/availability - Invalid worker ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWorkerID)
			return
		}
		workerID = &id
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(businessID, serviceID, dateStr, workerID)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/availability - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/availability - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrWorkerNotFound):
			h.logger.Warn("GET /businesses/{id}/availability - Worker not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, getAvailability.ErrServiceInactive):
			h.logger.Warn("GET /businesses/{id}/availability - Service inactive: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondUnprocessableEntity(w, msgServiceInactive)

		case errors.Is(err, getAvailability.ErrWorkerInactive):
			h.logger.Warn("GET /businesses/{id}/availability - Worker inactive: business_id=%d", businessID)
			handlers.RespondUnprocessableEntity(w, msgWorkerInactive)

		case errors.Is(err, getAvailability.ErrWorkerNotEligible):
			h.logger.Warn("GET /businesses/{id}/availability - Worker not eligible: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondUnprocessableEntity(w, msgWorkerNotEligible)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/availability - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /businesses/{id}/availability - Failed to get slots: business_id=%d, service_id=%d, error=%v",
				businessID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /businesses/{id}/availability - Slots retrieved successfully: business_id=%d, service_id=%d, slots_count=%d",
		businessID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
