package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/internal/scheduling"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	customerClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/customerservice"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
	"github.com/Mahamundra/Kalbook-sub000/pkg/ptr"
)

// UseCase use case для создания записи на услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	activityRepo    ActivityRepository
	catalogClient   CatalogServiceClient
	customerClient  CustomerServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	activityRepo ActivityRepository,
	catalogClient CatalogServiceClient,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		activityRepo:    activityRepo,
		catalogClient:   catalogClient,
		customerClient:  customerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка доступности слота и вставка выполняются в сериализуемой
// транзакции с блокировкой записей дня (FOR UPDATE): два конкурентных
// бронирования одного слота не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: actor=%d, business=%d, service=%d, worker=%d, date=%s, time=%s",
		req.ActorID, req.BusinessID, req.ServiceID, req.WorkerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес
	business, err := uc.catalogClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Запись от имени бизнеса может создавать только его менеджер
	if req.CreatedBy == domain.CreatedByAdmin && !business.IsManager(req.ActorID) {
		uc.logger.Warn("CreateAppointment: user id=%d is not a manager of business id=%d",
			req.ActorID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 5. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 6. Получаем работника и проверяем, что он оказывает услугу
	worker, err := uc.catalogClient.GetWorker(ctx, req.BusinessID, req.WorkerID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrWorkerNotFound) {
			uc.logger.Warn("CreateAppointment: worker id=%d not found", req.WorkerID)
			return nil, ErrWorkerNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get worker id=%d: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
	}
	if !worker.Active {
		uc.logger.Warn("CreateAppointment: worker id=%d is inactive", req.WorkerID)
		return nil, ErrWorkerInactive
	}
	if !worker.Offers(req.ServiceID) {
		uc.logger.Warn("CreateAppointment: worker id=%d does not provide service id=%d",
			req.WorkerID, req.ServiceID)
		return nil, ErrWorkerNotEligible
	}

	// 7. Определяем клиента (вне транзакции - внешний HTTP-вызов)
	customerID, err := uc.resolveCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем настройки бизнеса (дефолтные, если не сохранены)
		settings, err := uc.settingsRepo.GetByBusinessID(txCtx, req.BusinessID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateAppointment: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultSettings(req.BusinessID)
			uc.logger.Info("CreateAppointment: using default settings for business=%d", req.BusinessID)
		}

		calendar := scheduling.CalendarFromSettings(settings)

		// 8.2. Валидация даты и рабочего графика
		if isDateInPast(req.Date, now) {
			uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
			return ErrInvalidDate
		}
		if !calendar.IsWorkingDay(req.Date) {
			uc.logger.Warn("CreateAppointment: %s is not a working day", req.Date.Format(domain.DateFormat))
			return ErrOutsideWorkingHours
		}
		if !calendar.FitsWorkingHours(req.StartTime, service.DurationMinutes) {
			uc.logger.Warn("CreateAppointment: slot %s+%dm does not fit working hours",
				req.StartTime, service.DurationMinutes)
			return ErrOutsideWorkingHours
		}

		// 8.3. Минимальное упреждение действует только на сегодня
		if err := validateLeadTime(req.Date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateAppointment: lead time validation failed: %v", err)
			return err
		}

		// 8.4. Получаем активные записи работника на эту дату с блокировкой (FOR UPDATE)
		filter := domain.BusinessAppointmentsFilter{
			BusinessID: req.BusinessID,
			WorkerID:   ptr.Ptr(req.WorkerID),
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		}

		appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 8.5. Повторная проверка доступности слота на момент коммита
		svc := scheduling.ServiceSpec{
			DurationMinutes: service.DurationMinutes,
			IsGroup:         service.IsGroup,
			MaxCapacity:     service.MaxCapacity,
		}
		if !scheduling.IsSlotBookable(req.Date, req.StartTime, svc, req.WorkerID, appointments) {
			uc.logger.Warn("CreateAppointment: slot %s %s is no longer available for worker=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, req.WorkerID)
			return ErrSlotNoLongerAvailable
		}

		// 8.6. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			WorkerID:        req.WorkerID,
			CustomerID:      customerID,
			AppointmentDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			CreatedBy:       req.CreatedBy,
			IsGroup:         service.IsGroup,
			ServiceName:     service.Name,
			ServicePrice:    getServicePrice(service),
			Notes:           req.Notes,
		}
		if service.IsGroup {
			appt.MaxCapacity = ptr.Ptr(service.MaxCapacity)
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 8.7. Фиксируем событие в журнале активности
		_, err = uc.activityRepo.Create(txCtx, &domain.ActivityEvent{
			BusinessID:    req.BusinessID,
			AppointmentID: created.ID,
			EventType:     domain.EventAppointmentCreated,
			ActorID:       req.ActorID,
			Details: map[string]interface{}{
				"date":         created.AppointmentDate.Format(domain.DateFormat),
				"time":         created.StartTime.String(),
				"service_name": created.ServiceName,
				"worker_id":    created.WorkerID,
				"created_by":   string(created.CreatedBy),
			},
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to log activity: %v", err)
			return fmt.Errorf("%w: failed to log activity: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	endTime, err := result.EndTime()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		BusinessID:      result.BusinessID,
		ServiceID:       result.ServiceID,
		WorkerID:        result.WorkerID,
		CustomerID:      result.CustomerID,
		AppointmentDate: result.AppointmentDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		CreatedBy:       string(result.CreatedBy),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveCustomer определяет ID клиента для записи.
// Известный клиент переиспользуется; иначе - поиск по телефону и создание
// нового при отсутствии. Дубликаты по телефону исключает CustomerService.
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request) (int64, error) {
	if req.CustomerID != nil {
		customer, err := uc.customerClient.GetByID(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, customerClient.ErrCustomerNotFound) {
				uc.logger.Warn("CreateAppointment: customer id=%d not found", *req.CustomerID)
				return 0, ErrCustomerNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get customer id=%d: %v", *req.CustomerID, err)
			return 0, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		return customer.ID, nil
	}

	customer, err := uc.customerClient.FindByPhone(ctx, *req.CustomerPhone)
	if err == nil {
		uc.logger.Info("CreateAppointment: found existing customer id=%d by phone", customer.ID)
		return customer.ID, nil
	}
	if !errors.Is(err, customerClient.ErrCustomerNotFound) {
		uc.logger.Error("CreateAppointment: failed to find customer by phone: %v", err)
		return 0, fmt.Errorf("%w: failed to find customer: %v", ErrInternal, err)
	}

	created, err := uc.customerClient.Create(ctx, &customerClient.CreateCustomerRequest{
		Name:  *req.CustomerName,
		Email: *req.CustomerEmail,
		Phone: *req.CustomerPhone,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create customer: %v", err)
		return 0, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created new customer id=%d", created.ID)
	return created.ID, nil
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
