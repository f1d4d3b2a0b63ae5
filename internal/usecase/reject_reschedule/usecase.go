package reject_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	apptRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/appointment"
	rescheduleRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/reschedule"
)

// UseCase use case для отклонения переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	rescheduleRepo  RescheduleRepository
	activityRepo    ActivityRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	rescheduleRepo RescheduleRepository,
	activityRepo ActivityRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		rescheduleRepo:  rescheduleRepo,
		activityRepo:    activityRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отклонения переноса
// Запись не изменяется: клиент остаётся на исходном времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectReschedule: actor=%d, request=%d", req.ActorID, req.RequestID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RejectReschedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запрос на перенос
	request, err := uc.rescheduleRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
			uc.logger.Warn("RejectReschedule: request id=%d not found", req.RequestID)
			return nil, ErrRequestNotFound
		}
		uc.logger.Error("RejectReschedule: failed to get request id=%d: %v", req.RequestID, err)
		return nil, fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}

	// 3. Терминальные состояния не переоткрываются
	if request.IsResolved() {
		uc.logger.Warn("RejectReschedule: request id=%d is already resolved (%s)",
			req.RequestID, request.Status)
		return nil, ErrAlreadyResolved
	}

	// 4. Получаем запись для определения бизнеса
	appt, err := uc.appointmentRepo.GetByID(ctx, request.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RejectReschedule: appointment id=%d not found", request.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RejectReschedule: failed to get appointment id=%d: %v", request.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 5. Отклонять переносы может только менеджер бизнеса
	business, err := uc.catalogClient.GetBusiness(ctx, appt.BusinessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("RejectReschedule: business id=%d not found", appt.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("RejectReschedule: failed to get business id=%d: %v", appt.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsManager(req.ActorID) {
		uc.logger.Warn("RejectReschedule: user id=%d is not a manager of business id=%d",
			req.ActorID, appt.BusinessID)
		return nil, ErrAccessDenied
	}

	// 6. Отклоняем запрос и фиксируем событие атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.rescheduleRepo.Resolve(txCtx, request.ID, domain.RescheduleRejected, req.Message); err != nil {
			uc.logger.Error("RejectReschedule: failed to resolve request: %v", err)
			return fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
		}

		details := map[string]interface{}{
			"request_id": request.ID,
			"to_date":    request.RequestedDate.Format(domain.DateFormat),
			"to_time":    request.RequestedTime.String(),
		}
		if req.Message != nil {
			details["message"] = *req.Message
		}

		_, err := uc.activityRepo.Create(txCtx, &domain.ActivityEvent{
			BusinessID:    appt.BusinessID,
			AppointmentID: appt.ID,
			EventType:     domain.EventRescheduleRejected,
			ActorID:       req.ActorID,
			Details:       details,
		})
		if err != nil {
			uc.logger.Error("RejectReschedule: failed to log activity: %v", err)
			return fmt.Errorf("%w: failed to log activity: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RejectReschedule: request id=%d rejected, appointment id=%d keeps its time",
		request.ID, appt.ID)

	return &Response{
		RequestID:     request.ID,
		AppointmentID: appt.ID,
		Status:        string(domain.RescheduleRejected),
		Message:       req.Message,
		ResolvedAt:    uc.timeProvider.Now(),
	}, nil
}
