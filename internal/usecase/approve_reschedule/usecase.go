package approve_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/internal/scheduling"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	apptRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/appointment"
	rescheduleRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/reschedule"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
	"github.com/Mahamundra/Kalbook-sub000/pkg/ptr"
)

// UseCase use case для одобрения переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	rescheduleRepo  RescheduleRepository
	settingsRepo    SettingsRepository
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
	settingsRepo SettingsRepository,
	activityRepo ActivityRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		rescheduleRepo:  rescheduleRepo,
		settingsRepo:    settingsRepo,
		activityRepo:    activityRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case одобрения переноса
// Запрошенный слот мог быть занят, пока запрос ожидал: конфликт проверяется
// повторно в сериализуемой транзакции. При конфликте запрос остаётся
// pending - авто-отклонения нет, решение принимает администратор
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveReschedule: actor=%d, request=%d", req.ActorID, req.RequestID)

	// 1. Валидация входных данных
	if req.ActorID <= 0 || req.RequestID <= 0 {
		uc.logger.Warn("ApproveReschedule: invalid input: actor=%d, request=%d", req.ActorID, req.RequestID)
		return nil, fmt.Errorf("%w: actorID and requestID must be positive", ErrInvalidInput)
	}

	// 2. Получаем запрос на перенос
	request, err := uc.rescheduleRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
			uc.logger.Warn("ApproveReschedule: request id=%d not found", req.RequestID)
			return nil, ErrRequestNotFound
		}
		uc.logger.Error("ApproveReschedule: failed to get request id=%d: %v", req.RequestID, err)
		return nil, fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}

	// 3. Терминальные состояния не переоткрываются
	if request.IsResolved() {
		uc.logger.Warn("ApproveReschedule: request id=%d is already resolved (%s)",
			req.RequestID, request.Status)
		return nil, ErrAlreadyResolved
	}

	// 4. Получаем запись
	appt, err := uc.appointmentRepo.GetByID(ctx, request.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("ApproveReschedule: appointment id=%d not found", request.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("ApproveReschedule: failed to get appointment id=%d: %v", request.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if appt.IsCancelled() {
		uc.logger.Warn("ApproveReschedule: appointment id=%d is cancelled", appt.ID)
		return nil, ErrAppointmentCancelled
	}

	// 5. Одобрять переносы может только менеджер бизнеса
	business, err := uc.catalogClient.GetBusiness(ctx, appt.BusinessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("ApproveReschedule: business id=%d not found", appt.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("ApproveReschedule: failed to get business id=%d: %v", appt.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	if !business.IsManager(req.ActorID) {
		uc.logger.Warn("ApproveReschedule: user id=%d is not a manager of business id=%d",
			req.ActorID, appt.BusinessID)
		return nil, ErrAccessDenied
	}

	// 6. Слот должен попадать в текущий график и всё ещё быть достижимым:
	// пока запрос ждал, могли измениться настройки или пройти сама дата.
	// Нарушение трактуется как занятый слот - запрос остаётся pending
	settings, err := uc.settingsRepo.GetByBusinessID(ctx, appt.BusinessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("ApproveReschedule: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(appt.BusinessID)
	}

	calendar := scheduling.CalendarFromSettings(settings)
	now := uc.timeProvider.Now()

	if !slotStillReachable(request.RequestedDate, request.RequestedTime, now) ||
		!calendar.IsWorkingDay(request.RequestedDate) ||
		!calendar.FitsWorkingHours(request.RequestedTime, appt.DurationMinutes) {
		uc.logger.Warn("ApproveReschedule: slot %s %s is outside the current schedule, request id=%d stays pending",
			request.RequestedDate.Format(domain.DateFormat), request.RequestedTime, request.ID)
		return nil, ErrSlotNoLongerAvailable
	}

	// 7. Повторная проверка конфликта и применение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Записи работника на новую дату с блокировкой (FOR UPDATE)
		filter := domain.BusinessAppointmentsFilter{
			BusinessID: appt.BusinessID,
			WorkerID:   ptr.Ptr(appt.WorkerID),
			StartDate:  &request.RequestedDate,
			EndDate:    &request.RequestedDate,
		}

		appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("ApproveReschedule: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Перенесённая запись не должна конфликтовать сама с собой
		appointments = scheduling.ExcludeAppointment(appointments, appt.ID)

		svc := scheduling.ServiceSpec{
			DurationMinutes: appt.DurationMinutes,
			IsGroup:         appt.IsGroup,
			MaxCapacity:     maxCapacity(appt),
		}
		if !scheduling.IsSlotBookable(request.RequestedDate, request.RequestedTime, svc, appt.WorkerID, appointments) {
			uc.logger.Warn("ApproveReschedule: slot %s %s is no longer available, request id=%d stays pending",
				request.RequestedDate.Format(domain.DateFormat), request.RequestedTime, request.ID)
			return ErrSlotNoLongerAvailable
		}

		if err := uc.appointmentRepo.UpdateTime(txCtx, appt.ID, request.RequestedDate, request.RequestedTime); err != nil {
			uc.logger.Error("ApproveReschedule: failed to update appointment time: %v", err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		if err := uc.rescheduleRepo.Resolve(txCtx, request.ID, domain.RescheduleApproved, nil); err != nil {
			uc.logger.Error("ApproveReschedule: failed to resolve request: %v", err)
			return fmt.Errorf("%w: failed to resolve request: %v", ErrInternal, err)
		}

		_, err = uc.activityRepo.Create(txCtx, &domain.ActivityEvent{
			BusinessID:    appt.BusinessID,
			AppointmentID: appt.ID,
			EventType:     domain.EventRescheduleApproved,
			ActorID:       req.ActorID,
			Details: map[string]interface{}{
				"request_id": request.ID,
				"from_date":  appt.AppointmentDate.Format(domain.DateFormat),
				"from_time":  appt.StartTime.String(),
				"to_date":    request.RequestedDate.Format(domain.DateFormat),
				"to_time":    request.RequestedTime.String(),
			},
		})
		if err != nil {
			uc.logger.Error("ApproveReschedule: failed to log activity: %v", err)
			return fmt.Errorf("%w: failed to log activity: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApproveReschedule: request id=%d approved, appointment id=%d moved to %s %s",
		request.ID, appt.ID, request.RequestedDate.Format(domain.DateFormat), request.RequestedTime)

	return &Response{
		RequestID:       request.ID,
		AppointmentID:   appt.ID,
		AppointmentDate: request.RequestedDate,
		StartTime:       request.RequestedTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(domain.RescheduleApproved),
	}, nil
}

func maxCapacity(appt *domain.Appointment) int {
	if appt.MaxCapacity == nil {
		return 0
	}
	return *appt.MaxCapacity
}
