package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/internal/scheduling"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Доступность всегда пересчитывается на момент вызова, ничего не кэшируется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailability: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("GetAvailability: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Определяем кандидатов-работников
	workers, err := uc.resolveWorkers(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Получаем настройки бизнеса (дефолтные, если не сохранены)
	settings, err := uc.settingsRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailability: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultSettings(req.BusinessID)
		uc.logger.Info("GetAvailability: using default settings for business=%d", req.BusinessID)
	}

	calendar := scheduling.CalendarFromSettings(settings)

	response := &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      make([]Slot, 0),
	}

	// 6. Нерабочий день, дата вне окна бронирования или отсутствие
	// работников - пустой список
	if len(workers) == 0 || !calendar.IsWorkingDay(req.Date) ||
		isDateInPast(req.Date, now) || isBeyondHorizon(req.Date, now) {
		return response, nil
	}

	// 7. Получаем активные записи на эту дату
	filter := domain.BusinessAppointmentsFilter{
		BusinessID: req.BusinessID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
	}
	if req.WorkerID != nil {
		filter.WorkerID = req.WorkerID
	}

	appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Проверяем каждый слот сетки
	svc := scheduling.ServiceSpec{
		DurationMinutes: service.DurationMinutes,
		IsGroup:         service.IsGroup,
		MaxCapacity:     service.MaxCapacity,
	}

	minStart, leadTimeApplies := sameDayLeadCutoff(req.Date, now)

	for _, slotTime := range calendar.TimeSlots() {
		// Услуга должна целиком помещаться до закрытия
		if !calendar.FitsWorkingHours(slotTime, service.DurationMinutes) {
			continue
		}

		// На сегодня действует минимальное время упреждения
		if leadTimeApplies && slotTime.IsBefore(minStart) {
			continue
		}

		// Слот доступен, если свободен хотя бы один из работников-кандидатов
		spots := 0
		for _, worker := range workers {
			left := scheduling.SpotsLeft(req.Date, slotTime, svc, worker.ID, appointments)
			if left > spots {
				spots = left
			}
		}

		if spots > 0 {
			response.Slots = append(response.Slots, Slot{Time: slotTime, SpotsLeft: spots})
		}
	}

	uc.logger.Info("GetAvailability: business=%d, service=%d, date=%s - %d slots available",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), len(response.Slots))

	return response, nil
}

// resolveWorkers возвращает работников, среди которых ищется свободный слот.
// Для конкретного работника проверяет его активность и право оказывать услугу;
// иначе берёт всех активных работников бизнеса, оказывающих услугу.
func (uc *UseCase) resolveWorkers(ctx context.Context, req *Request) ([]*catalogClient.Worker, error) {
	if req.WorkerID != nil {
		worker, err := uc.catalogClient.GetWorker(ctx, req.BusinessID, *req.WorkerID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrWorkerNotFound) {
				uc.logger.Warn("GetAvailability: worker id=%d not found", *req.WorkerID)
				return nil, ErrWorkerNotFound
			}
			uc.logger.Error("GetAvailability: failed to get worker id=%d: %v", *req.WorkerID, err)
			return nil, fmt.Errorf("%w: failed to get worker: %v", ErrInternal, err)
		}

		if !worker.Active {
			uc.logger.Warn("GetAvailability: worker id=%d is inactive", worker.ID)
			return nil, ErrWorkerInactive
		}
		if !worker.Offers(req.ServiceID) {
			uc.logger.Warn("GetAvailability: worker id=%d does not provide service id=%d",
				worker.ID, req.ServiceID)
			return nil, ErrWorkerNotEligible
		}

		return []*catalogClient.Worker{worker}, nil
	}

	all, err := uc.catalogClient.ListWorkers(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailability: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailability: failed to list workers: %v", err)
		return nil, fmt.Errorf("%w: failed to list workers: %v", ErrInternal, err)
	}

	eligible := make([]*catalogClient.Worker, 0, len(all))
	for _, worker := range all {
		if worker.Active && worker.Offers(req.ServiceID) {
			eligible = append(eligible, worker)
		}
	}

	return eligible, nil
}
