package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	appointmentRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/appointment"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	"github.com/Mahamundra/Kalbook-sub000/internal/service/appointments/models"
	"github.com/Mahamundra/Kalbook-sub000/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	cancelled    []int64
	lastReason   *string
}

func newFakeAppointmentRepo(appts ...*domain.Appointment) *fakeAppointmentRepo {
	f := &fakeAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
	for _, a := range appts {
		f.appointments[a.ID] = a
	}
	return f
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.CustomerID != customerID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.BusinessID != filter.BusinessID {
			continue
		}
		if filter.WorkerID != nil && a.WorkerID != *filter.WorkerID {
			continue
		}
		if a.IsCancelled() && !filter.IncludeCancelled {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64, reason *string) error {
	appt, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = reason
	f.cancelled = append(f.cancelled, id)
	f.lastReason = reason
	return nil
}

type fakeActivityRepo struct {
	events []*domain.ActivityEvent
}

func (f *fakeActivityRepo) Create(_ context.Context, event *domain.ActivityEvent) (*domain.ActivityEvent, error) {
	f.events = append(f.events, event)
	return event, nil
}

type fakeCatalogClient struct {
	business *catalogClient.Business
}

func (f *fakeCatalogClient) GetBusiness(_ context.Context, businessID int64) (*catalogClient.Business, error) {
	if f.business == nil || f.business.ID != businessID {
		return nil, catalogClient.ErrBusinessNotFound
	}
	return f.business, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	testBusinessID = int64(1)
	testManagerID  = int64(500)
	testCustomerID = int64(7)
)

func testAppointment(id int64) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		BusinessID:      testBusinessID,
		ServiceID:       10,
		WorkerID:        100,
		CustomerID:      testCustomerID,
		AppointmentDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		CreatedBy:       domain.CreatedByCustomer,
		ServiceName:     "Haircut",
		ServicePrice:    25.0,
	}
}

func newService(repo *fakeAppointmentRepo, activity *fakeActivityRepo) *Service {
	return NewService(
		repo,
		activity,
		&fakeCatalogClient{business: &catalogClient.Business{
			ID: testBusinessID, Name: "Salon", Active: true, ManagerIDs: []int64{testManagerID},
		}},
		fakeTxManager{},
		nopLogger{},
	)
}

func TestGetByID_OwnerAndManager(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1))
	svc := newService(repo, &fakeActivityRepo{})

	// Владелец видит свою запись
	resp, err := svc.GetByID(context.Background(), 1, testCustomerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)

	// Менеджер бизнеса тоже видит
	resp, err = svc.GetByID(context.Background(), 1, testManagerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Посторонний пользователь - нет
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeAppointmentRepo(), &fakeActivityRepo{})

	_, err := svc.GetByID(context.Background(), 42, testCustomerID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetCustomerAppointments_SelfOnly(t *testing.T) {
	appt := testAppointment(1)
	other := testAppointment(2)
	other.CustomerID = 8
	repo := newFakeAppointmentRepo(appt, other)
	svc := newService(repo, &fakeActivityRepo{})

	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		UserID: testCustomerID, CustomerID: testCustomerID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)

	// Чужую историю смотреть нельзя
	_, err = svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		UserID: testCustomerID, CustomerID: 8,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetCustomerAppointments_StatusFilter(t *testing.T) {
	active := testAppointment(1)
	cancelled := testAppointment(2)
	cancelled.Status = domain.StatusCancelled
	repo := newFakeAppointmentRepo(active, cancelled)
	svc := newService(repo, &fakeActivityRepo{})

	resp, err := svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		UserID: testCustomerID, CustomerID: testCustomerID, Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(2), resp.Appointments[0].ID)

	_, err = svc.GetCustomerAppointments(context.Background(), &models.GetCustomerAppointmentsRequest{
		UserID: testCustomerID, CustomerID: testCustomerID, Status: ptr.Ptr("bogus"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBusinessAppointments_ManagerOnly(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1))
	svc := newService(repo, &fakeActivityRepo{})

	resp, err := svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{
		UserID: testManagerID, BusinessID: testBusinessID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{
		UserID: testCustomerID, BusinessID: testBusinessID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBusinessAppointments_ExcludesCancelledByDefault(t *testing.T) {
	active := testAppointment(1)
	cancelled := testAppointment(2)
	cancelled.Status = domain.StatusCancelled
	repo := newFakeAppointmentRepo(active, cancelled)
	svc := newService(repo, &fakeActivityRepo{})

	resp, err := svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{
		UserID: testManagerID, BusinessID: testBusinessID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)

	resp, err = svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{
		UserID: testManagerID, BusinessID: testBusinessID, IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1))
	activity := &fakeActivityRepo{}
	svc := newService(repo, activity)
	reason := ptr.Ptr("plans changed")

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID: testCustomerID, CancellationReason: reason,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.cancelled)
	assert.Equal(t, reason, repo.lastReason)

	require.Len(t, activity.events, 1)
	assert.Equal(t, domain.EventAppointmentCancelled, activity.events[0].EventType)
	assert.Equal(t, testCustomerID, activity.events[0].ActorID)
	assert.Equal(t, "plans changed", activity.events[0].Details["reason"])
}

func TestCancel_ByManager(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1))
	svc := newService(repo, &fakeActivityRepo{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: testManagerID})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.cancelled)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := newFakeAppointmentRepo(testAppointment(1))
	svc := newService(repo, &fakeActivityRepo{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_AlreadyCancelledIsNoOp(t *testing.T) {
	appt := testAppointment(1)
	appt.Status = domain.StatusCancelled
	repo := newFakeAppointmentRepo(appt)
	activity := &fakeActivityRepo{}
	svc := newService(repo, activity)

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: testCustomerID})
	require.NoError(t, err)

	// Повторная отмена ничего не пишет
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, activity.events)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newService(newFakeAppointmentRepo(), &fakeActivityRepo{})

	err := svc.Cancel(context.Background(), 42, &models.CancelAppointmentRequest{UserID: testCustomerID})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
