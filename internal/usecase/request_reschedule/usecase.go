package request_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/internal/scheduling"
	apptRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/appointment"
	rescheduleRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/reschedule"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
	"github.com/Mahamundra/Kalbook-sub000/pkg/ptr"
)

// UseCase use case для запроса переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	rescheduleRepo  RescheduleRepository
	settingsRepo    SettingsRepository
	activityRepo    ActivityRepository
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
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		rescheduleRepo:  rescheduleRepo,
		settingsRepo:    settingsRepo,
		activityRepo:    activityRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case запроса переноса
// При requireApproval=false перенос применяется сразу в сериализуемой
// транзакции с повторной проверкой конфликтов; иначе создаётся ожидающий
// запрос, запись не изменяется до одобрения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestReschedule: actor=%d, appointment=%d, date=%s, time=%s",
		req.ActorID, req.AppointmentID, req.RequestedDate.Format(domain.DateFormat), req.RequestedTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestReschedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	appt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RequestReschedule: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RequestReschedule: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Переносить запись может только её владелец
	if appt.CustomerID != req.ActorID {
		uc.logger.Warn("RequestReschedule: user id=%d is not the owner of appointment id=%d",
			req.ActorID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	// 4. Отменённую запись перенести нельзя
	if appt.IsCancelled() {
		uc.logger.Warn("RequestReschedule: appointment id=%d is cancelled", req.AppointmentID)
		return nil, ErrAppointmentCancelled
	}

	// 5. Перенос на то же самое время - no-op, отклоняем до любых изменений
	if isSameDay(appt.AppointmentDate, req.RequestedDate) && appt.StartTime == req.RequestedTime {
		uc.logger.Warn("RequestReschedule: requested time equals current time for appointment id=%d",
			req.AppointmentID)
		return nil, ErrNoOpReschedule
	}

	// 6. Получаем настройки бизнеса: гейт на переносы клиентами
	settings, err := uc.settingsRepo.GetByBusinessID(ctx, appt.BusinessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("RequestReschedule: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(appt.BusinessID)
	}

	if !settings.AllowCustomerReschedule {
		uc.logger.Warn("RequestReschedule: business id=%d does not allow customer reschedule",
			appt.BusinessID)
		return nil, ErrRescheduleNotAllowed
	}

	// 7. На одну запись - не более одного ожидающего запроса
	_, err = uc.rescheduleRepo.GetPendingByAppointmentID(ctx, req.AppointmentID)
	if err == nil {
		uc.logger.Warn("RequestReschedule: pending request already exists for appointment id=%d",
			req.AppointmentID)
		return nil, ErrPendingRequestExists
	}
	if !errors.Is(err, rescheduleRepo.ErrRequestNotFound) {
		uc.logger.Error("RequestReschedule: failed to check pending request: %v", err)
		return nil, fmt.Errorf("%w: failed to check pending request: %v", ErrInternal, err)
	}

	if settings.RequireApproval {
		return uc.createPending(ctx, req, appt)
	}

	return uc.autoApply(ctx, req, appt, settings)
}

// createPending сохраняет ожидающий запрос, запись не изменяется
func (uc *UseCase) createPending(ctx context.Context, req *Request, appt *domain.Appointment) (*Response, error) {
	var created *domain.RescheduleRequest

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = uc.rescheduleRepo.Create(txCtx, &domain.RescheduleRequest{
			AppointmentID: req.AppointmentID,
			RequestedDate: req.RequestedDate,
			RequestedTime: req.RequestedTime,
			Status:        domain.ReschedulePending,
		})
		if err != nil {
			uc.logger.Error("RequestReschedule: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}

		if _, err := uc.activityRepo.Create(txCtx, uc.requestedEvent(req, appt, false)); err != nil {
			uc.logger.Error("RequestReschedule: failed to log activity: %v", err)
			return fmt.Errorf("%w: failed to log activity: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestReschedule: created pending request id=%d for appointment id=%d",
		created.ID, req.AppointmentID)

	return &Response{
		Applied: false,
		Reschedule: &RescheduleInfo{
			ID:            created.ID,
			AppointmentID: created.AppointmentID,
			RequestedDate: created.RequestedDate,
			RequestedTime: created.RequestedTime,
			Status:        string(created.Status),
			CreatedAt:     created.CreatedAt,
		},
	}, nil
}

// autoApply применяет перенос сразу: проверка рабочего графика, повторная
// проверка конфликтов и обновление записи в сериализуемой транзакции
func (uc *UseCase) autoApply(ctx context.Context, req *Request, appt *domain.Appointment, settings *domain.BusinessSettings) (*Response, error) {
	now := uc.timeProvider.Now()
	calendar := scheduling.CalendarFromSettings(settings)

	// Новый слот подчиняется тем же правилам графика, что и создание записи
	if isDateInPast(req.RequestedDate, now) {
		uc.logger.Warn("RequestReschedule: requested date %s is in the past",
			req.RequestedDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}
	if !calendar.IsWorkingDay(req.RequestedDate) {
		uc.logger.Warn("RequestReschedule: %s is not a working day",
			req.RequestedDate.Format(domain.DateFormat))
		return nil, ErrOutsideWorkingHours
	}
	if !calendar.FitsWorkingHours(req.RequestedTime, appt.DurationMinutes) {
		uc.logger.Warn("RequestReschedule: slot %s+%dm does not fit working hours",
			req.RequestedTime, appt.DurationMinutes)
		return nil, ErrOutsideWorkingHours
	}
	if err := validateLeadTime(req.RequestedDate, req.RequestedTime, now); err != nil {
		uc.logger.Warn("RequestReschedule: lead time validation failed: %v", err)
		return nil, err
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Записи работника на новую дату с блокировкой (FOR UPDATE)
		filter := domain.BusinessAppointmentsFilter{
			BusinessID: appt.BusinessID,
			WorkerID:   ptr.Ptr(appt.WorkerID),
			StartDate:  &req.RequestedDate,
			EndDate:    &req.RequestedDate,
		}

		appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RequestReschedule: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Перенесённая запись не должна конфликтовать сама с собой
		appointments = scheduling.ExcludeAppointment(appointments, appt.ID)

		svc := scheduling.ServiceSpec{
			DurationMinutes: appt.DurationMinutes,
			IsGroup:         appt.IsGroup,
			MaxCapacity:     maxCapacity(appt),
		}
		if !scheduling.IsSlotBookable(req.RequestedDate, req.RequestedTime, svc, appt.WorkerID, appointments) {
			uc.logger.Warn("RequestReschedule: slot %s %s is no longer available for worker=%d",
				req.RequestedDate.Format(domain.DateFormat), req.RequestedTime, appt.WorkerID)
			return ErrSlotNoLongerAvailable
		}

		if err := uc.appointmentRepo.UpdateTime(txCtx, appt.ID, req.RequestedDate, req.RequestedTime); err != nil {
			uc.logger.Error("RequestReschedule: failed to update appointment time: %v", err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		if _, err := uc.activityRepo.Create(txCtx, uc.requestedEvent(req, appt, true)); err != nil {
			uc.logger.Error("RequestReschedule: failed to log activity: %v", err)
			return fmt.Errorf("%w: failed to log activity: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestReschedule: auto-applied reschedule for appointment id=%d to %s %s",
		appt.ID, req.RequestedDate.Format(domain.DateFormat), req.RequestedTime)

	return &Response{
		Applied: true,
		Appointment: &AppointmentInfo{
			ID:              appt.ID,
			AppointmentDate: req.RequestedDate,
			StartTime:       req.RequestedTime,
			DurationMinutes: appt.DurationMinutes,
			Status:          string(appt.Status),
		},
	}, nil
}

func (uc *UseCase) requestedEvent(req *Request, appt *domain.Appointment, applied bool) *domain.ActivityEvent {
	return &domain.ActivityEvent{
		BusinessID:    appt.BusinessID,
		AppointmentID: appt.ID,
		EventType:     domain.EventRescheduleRequested,
		ActorID:       req.ActorID,
		Details: map[string]interface{}{
			"from_date":    appt.AppointmentDate.Format(domain.DateFormat),
			"from_time":    appt.StartTime.String(),
			"to_date":      req.RequestedDate.Format(domain.DateFormat),
			"to_time":      req.RequestedTime.String(),
			"auto_applied": applied,
		},
	}
}

func maxCapacity(appt *domain.Appointment) int {
	if appt.MaxCapacity == nil {
		return 0
	}
	return *appt.MaxCapacity
}
