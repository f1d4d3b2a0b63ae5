package approve_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	catalogClient "github.com/Mahamundra/Kalbook-sub000/internal/integrations/catalogservice"
	rescheduleRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/reschedule"
	settingsRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/settings"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	dayAppts    []*domain.Appointment
	updated     bool
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.dayAppts, nil
}

func (f *fakeAppointmentRepo) UpdateTime(_ context.Context, _ int64, _ time.Time, _ types.TimeString) error {
	f.updated = true
	return nil
}

type fakeRescheduleRepo struct {
	request        *domain.RescheduleRequest
	err            error
	resolved       bool
	resolvedStatus domain.RescheduleStatus
}

func (f *fakeRescheduleRepo) GetByID(_ context.Context, _ int64) (*domain.RescheduleRequest, error) {
	return f.request, f.err
}

func (f *fakeRescheduleRepo) Resolve(_ context.Context, _ int64, status domain.RescheduleStatus, _ *string) error {
	f.resolved = true
	f.resolvedStatus = status
	return nil
}

type fakeActivityRepo struct {
	events []*domain.ActivityEvent
}

func (f *fakeActivityRepo) Create(_ context.Context, event *domain.ActivityEvent) (*domain.ActivityEvent, error) {
	f.events = append(f.events, event)
	return event, nil
}

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
	err      error
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	return f.settings, f.err
}

type fakeCatalogClient struct {
	business *catalogClient.Business
	err      error
}

func (f *fakeCatalogClient) GetBusiness(_ context.Context, _ int64) (*catalogClient.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var requestedDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc         *UseCase
	appts      *fakeAppointmentRepo
	reschedule *fakeRescheduleRepo
	settings   *fakeSettingsRepo
	catalog    *fakeCatalogClient
	activity   *fakeActivityRepo
}

func newFixture() *fixture {
	f := &fixture{
		appts: &fakeAppointmentRepo{
			appointment: &domain.Appointment{
				ID: 1, BusinessID: 1, WorkerID: 100, CustomerID: 7,
				AppointmentDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				StartTime:       "10:00", DurationMinutes: 30,
				Status: domain.StatusConfirmed,
			},
		},
		reschedule: &fakeRescheduleRepo{
			request: &domain.RescheduleRequest{
				ID: 55, AppointmentID: 1,
				RequestedDate: requestedDate, RequestedTime: "11:00",
				Status: domain.ReschedulePending,
			},
		},
		settings: &fakeSettingsRepo{err: settingsRepo.ErrSettingsNotFound},
		catalog:  &fakeCatalogClient{business: &catalogClient.Business{ID: 1, Active: true, ManagerIDs: []int64{500}}},
		activity: &fakeActivityRepo{},
	}
	f.uc = NewUseCase(
		f.appts,
		f.reschedule,
		f.settings,
		f.activity,
		f.catalog,
		fakeTxManager{},
		nopLogger{},
	)
	// Запрошенная дата 2025-06-03 ещё впереди
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return f
}

func TestExecute_ApproveAppliesNewTime(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 55})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, types.TimeString("11:00"), resp.StartTime)
	assert.True(t, f.appts.updated)
	assert.True(t, f.reschedule.resolved)
	assert.Equal(t, domain.RescheduleApproved, f.reschedule.resolvedStatus)

	require.Len(t, f.activity.events, 1)
	assert.Equal(t, domain.EventRescheduleApproved, f.activity.events[0].EventType)
}

func TestExecute_ConflictLeavesRequestPending(t *testing.T) {
	f := newFixture()
	// Запрошенный слот занят другой записью, пока запрос ожидал
	f.appts.dayAppts = []*domain.Appointment{
		{
			ID: 2, BusinessID: 1, WorkerID: 100, CustomerID: 8,
			AppointmentDate: requestedDate, StartTime: "11:00", DurationMinutes: 30,
			Status: domain.StatusConfirmed,
		},
	}

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 55})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	// Запись не тронута, запрос не разрешён - остаётся pending
	assert.False(t, f.appts.updated)
	assert.False(t, f.reschedule.resolved)
}

func TestExecute_ScheduleChangeLeavesRequestPending(t *testing.T) {
	f := newFixture()
	// Пока запрос ожидал, бизнес укоротил рабочий день: 11:00+30м уже не помещается
	f.settings.settings = &domain.BusinessSettings{
		BusinessID:     1,
		WorkingDays:    []int{1, 2, 3, 4, 5},
		WorkStart:      "09:00",
		WorkEnd:        "11:00",
		SlotGapMinutes: 30,
	}
	f.settings.err = nil

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 55})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	assert.False(t, f.appts.updated)
	assert.False(t, f.reschedule.resolved)
}

func TestExecute_ExpiredRequestedDateLeavesRequestPending(t *testing.T) {
	f := newFixture()
	// Запрошенная дата прошла, пока запрос ожидал одобрения
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 55})
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)

	assert.False(t, f.appts.updated)
	assert.False(t, f.reschedule.resolved)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	f := newFixture()
	f.catalog.business = nil
	f.catalog.err = catalogClient.ErrBusinessNotFound

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 55})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_AlreadyResolved(t *testing.T) {
	f := newFixture()
	f.reschedule.request.Status = domain.RescheduleApproved

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 55})
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestExecute_ManagerOnly(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 7, RequestID: 55})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_RequestNotFound(t *testing.T) {
	f := newFixture()
	f.reschedule.request = nil
	f.reschedule.err = rescheduleRepo.ErrRequestNotFound

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 404})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_CancelledAppointment(t *testing.T) {
	f := newFixture()
	f.appts.appointment.Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), &Request{ActorID: 500, RequestID: 55})
	assert.ErrorIs(t, err, ErrAppointmentCancelled)
}
