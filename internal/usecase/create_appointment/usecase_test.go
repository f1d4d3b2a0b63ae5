package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	customerClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/customerservice"
	"github.com/Mahamundra/Kalbook-sub000/pkg/ptr"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// fakeAppointmentRepo хранит записи в памяти и имитирует автоинкремент ID
type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	appt.ID = f.nextID
	f.appointments = append(f.appointments, appt)
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if appt.BusinessID != filter.BusinessID {
			continue
		}
		if filter.WorkerID != nil && appt.WorkerID != *filter.WorkerID {
			continue
		}
		if appt.IsCancelled() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
	err      error
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	return f.settings, f.err
}

type fakeActivityRepo struct {
	events []*domain.ActivityEvent
}

func (f *fakeActivityRepo) Create(_ context.Context, event *domain.ActivityEvent) (*domain.ActivityEvent, error) {
	f.events = append(f.events, event)
	return event, nil
}

type fakeCatalogClient struct {
	business   *catalogClient.Business
	service    *catalogClient.Service
	serviceErr error
	worker     *catalogClient.Worker
	workerErr  error
}

func (f *fakeCatalogClient) GetBusiness(_ context.Context, _ int64) (*catalogClient.Business, error) {
	return f.business, nil
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogClient.Service, error) {
	return f.service, f.serviceErr
}

func (f *fakeCatalogClient) GetWorker(_ context.Context, _, _ int64) (*catalogClient.Worker, error) {
	return f.worker, f.workerErr
}

type fakeCustomerClient struct {
	byID        *customerClient.Customer
	byIDErr     error
	byPhone     *customerClient.Customer
	byPhoneErr  error
	created     *customerClient.Customer
	createCalls int
}

func (f *fakeCustomerClient) GetByID(_ context.Context, _ int64) (*customerClient.Customer, error) {
	return f.byID, f.byIDErr
}

func (f *fakeCustomerClient) FindByPhone(_ context.Context, _ string) (*customerClient.Customer, error) {
	return f.byPhone, f.byPhoneErr
}

func (f *fakeCustomerClient) Create(_ context.Context, req *customerClient.CreateCustomerRequest) (*customerClient.Customer, error) {
	f.createCalls++
	if f.created != nil {
		return f.created, nil
	}
	return &customerClient.Customer{ID: 900, Name: req.Name, Email: req.Email, Phone: req.Phone}, nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Понедельник 2025-06-02
var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	appts    *fakeAppointmentRepo
	activity *fakeActivityRepo
	catalog  *fakeCatalogClient
	customer *fakeCustomerClient
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		appts:    &fakeAppointmentRepo{},
		activity: &fakeActivityRepo{},
		catalog: &fakeCatalogClient{
			business: &catalogClient.Business{ID: 1, Active: true, ManagerIDs: []int64{500}},
			service: &catalogClient.Service{
				ID: 10, BusinessID: 1, Name: "Haircut", Price: ptr.Ptr(25.0),
				DurationMinutes: 30, Active: true,
			},
			worker: &catalogClient.Worker{ID: 100, BusinessID: 1, Active: true, ServiceIDs: []int64{10}},
		},
		customer: &fakeCustomerClient{byID: &customerClient.Customer{ID: 7}},
	}

	f.uc = NewUseCase(
		f.appts,
		&fakeSettingsRepo{settings: &domain.BusinessSettings{
			BusinessID:     1,
			WorkingDays:    []int{1, 2, 3, 4, 5},
			WorkStart:      "09:00",
			WorkEnd:        "12:00",
			SlotGapMinutes: 30,
		}},
		f.activity,
		f.catalog,
		f.customer,
		fakeTxManager{},
		nopLogger{},
	)
	f.uc.timeProvider = &fixedTimeProvider{now: now}

	return f
}

func validRequest() *Request {
	return &Request{
		ActorID:    7,
		BusinessID: 1,
		ServiceID:  10,
		WorkerID:   100,
		Date:       testDate,
		StartTime:  "09:30",
		CreatedBy:  domain.CreatedByCustomer,
		CustomerID: ptr.Ptr(int64(7)),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, types.TimeString("09:30"), resp.StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.EndTime)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 25.0, resp.ServicePrice)

	// Событие журнала активности создано
	require.Len(t, f.activity.events, 1)
	assert.Equal(t, domain.EventAppointmentCreated, f.activity.events[0].EventType)
	assert.Equal(t, resp.ID, f.activity.events[0].AppointmentID)
}

func TestExecute_DoubleBookSameWorkerFails(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_SameSlotDifferentWorkerSucceeds(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Конфликты считаются на работника: тот же слот у другого работника свободен
	f.catalog.worker = &catalogClient.Worker{ID: 200, BusinessID: 1, Active: true, ServiceIDs: []int64{10}}
	req := validRequest()
	req.WorkerID = 200

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)
}

func TestExecute_HalfOpenBoundaryNoConflict(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Запись [09:30,10:00): слот, начинающийся ровно в 10:00, не конфликтует
	req := validRequest()
	req.StartTime = "10:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_GroupCapacity(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))
	f.catalog.service = &catalogClient.Service{
		ID: 10, BusinessID: 1, Name: "Yoga", DurationMinutes: 30,
		Active: true, IsGroup: true, MaxCapacity: 3,
	}

	// Три участника помещаются
	for i := 0; i < 3; i++ {
		_, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	}

	// Четвёртый - нет
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_GuestLookupOrCreate(t *testing.T) {
	t.Run("existing customer found by phone", func(t *testing.T) {
		f := newFixture(testDate.AddDate(0, 0, -7))
		f.customer.byPhone = &customerClient.Customer{ID: 42}

		req := validRequest()
		req.CustomerID = nil
		req.CustomerName = ptr.Ptr("Jane")
		req.CustomerEmail = ptr.Ptr("jane@example.com")
		req.CustomerPhone = ptr.Ptr("+15550001")

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.CustomerID)
		assert.Zero(t, f.customer.createCalls)
	})

	t.Run("new customer created when phone unknown", func(t *testing.T) {
		f := newFixture(testDate.AddDate(0, 0, -7))
		f.customer.byPhoneErr = customerClient.ErrCustomerNotFound

		req := validRequest()
		req.CustomerID = nil
		req.CustomerName = ptr.Ptr("Jane")
		req.CustomerEmail = ptr.Ptr("jane@example.com")
		req.CustomerPhone = ptr.Ptr("+15550001")

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(900), resp.CustomerID)
		assert.Equal(t, 1, f.customer.createCalls)
	})

	t.Run("missing contact details rejected", func(t *testing.T) {
		f := newFixture(testDate.AddDate(0, 0, -7))

		req := validRequest()
		req.CustomerID = nil
		req.CustomerName = ptr.Ptr("Jane")
		req.CustomerPhone = ptr.Ptr("+15550001")
		// email отсутствует

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_AdminRequiresManager(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.CreatedBy = domain.CreatedByAdmin
	req.ActorID = 7 // не менеджер

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req.ActorID = 500 // менеджер
	req.CustomerID = ptr.Ptr(int64(7))
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_InactiveServiceAndWorker(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))
	f.catalog.service.Active = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceInactive)

	f.catalog.service.Active = true
	f.catalog.worker.Active = false
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrWorkerInactive)
}

func TestExecute_WorkerNotEligible(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))
	f.catalog.worker.ServiceIDs = []int64{99}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrWorkerNotEligible)
}

func TestExecute_WorkingScheduleChecks(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))

	t.Run("non-working day", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) // воскресенье
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("duration does not fit before closing", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "11:45" // 11:45+30 > 12:00
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("past date", func(t *testing.T) {
		req := validRequest()
		req.Date = testDate.AddDate(0, 0, -14)
		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestExecute_LeadTimeTodayOnly(t *testing.T) {
	// Сейчас 09:20 дня записи: 09:30 < 09:35 - слишком поздно
	f := newFixture(time.Date(2025, 6, 2, 9, 20, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// 09:35 и позже - допустимо
	req := validRequest()
	req.StartTime = "10:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// Сквозной сценарий: сетка 09:00-12:00 с шагом 30, бронирование 09:30,
// повтор у того же работника падает, у другого - проходит
func TestExecute_EndToEndScenario(t *testing.T) {
	f := newFixture(testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.StartTime = "09:30"
	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	f.catalog.worker = &catalogClient.Worker{ID: 200, BusinessID: 1, Active: true, ServiceIDs: []int64{10}}
	req.WorkerID = 200
	_, err = f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Оба бронирования записаны, отмен нет
	assert.Len(t, f.appts.appointments, 2)
}
