package request_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	apptRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/appointment"
	rescheduleRepo "github.com/Mahamundra/Kalbook-sub000/internal/infra/storage/reschedule"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	dayAppts    []*domain.Appointment
	updated     bool
	updatedDate time.Time
	updatedTime types.TimeString
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	if f.appointment == nil || f.appointment.ID != id {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.dayAppts, nil
}

func (f *fakeAppointmentRepo) UpdateTime(_ context.Context, _ int64, date time.Time, start types.TimeString) error {
	f.updated = true
	f.updatedDate = date
	f.updatedTime = start
	return nil
}

type fakeRescheduleRepo struct {
	pending *domain.RescheduleRequest
	created *domain.RescheduleRequest
}

func (f *fakeRescheduleRepo) Create(_ context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error) {
	req.ID = 55
	req.CreatedAt = time.Now()
	f.created = req
	return req, nil
}

func (f *fakeRescheduleRepo) GetPendingByAppointmentID(_ context.Context, _ int64) (*domain.RescheduleRequest, error) {
	if f.pending == nil {
		return nil, rescheduleRepo.ErrRequestNotFound
	}
	return f.pending, nil
}

func (f *fakeRescheduleRepo) Resolve(_ context.Context, _ int64, _ domain.RescheduleStatus, _ *string) error {
	return nil
}

type fakeSettingsRepo struct {
	settings *domain.BusinessSettings
}

func (f *fakeSettingsRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessSettings, error) {
	return f.settings, nil
}

type fakeActivityRepo struct {
	events []*domain.ActivityEvent
}

func (f *fakeActivityRepo) Create(_ context.Context, event *domain.ActivityEvent) (*domain.ActivityEvent, error) {
	f.events = append(f.events, event)
	return event, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	currentDate   = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	requestedDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		BusinessID:      1,
		ServiceID:       10,
		WorkerID:        100,
		CustomerID:      7,
		AppointmentDate: currentDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
}

func testSettings(requireApproval bool) *domain.BusinessSettings {
	return &domain.BusinessSettings{
		BusinessID:              1,
		WorkingDays:             []int{1, 2, 3, 4, 5},
		WorkStart:               "09:00",
		WorkEnd:                 "18:00",
		SlotGapMinutes:          30,
		AllowCustomerReschedule: true,
		RequireApproval:         requireApproval,
	}
}

type fixture struct {
	uc         *UseCase
	appts      *fakeAppointmentRepo
	reschedule *fakeRescheduleRepo
	activity   *fakeActivityRepo
}

func newFixture(settings *domain.BusinessSettings) *fixture {
	f := &fixture{
		appts:      &fakeAppointmentRepo{appointment: testAppointment()},
		reschedule: &fakeRescheduleRepo{},
		activity:   &fakeActivityRepo{},
	}
	f.uc = NewUseCase(
		f.appts,
		f.reschedule,
		&fakeSettingsRepo{settings: settings},
		f.activity,
		fakeTxManager{},
		nopLogger{},
	)
	// Утро понедельника 2025-06-02: обе тестовые даты ещё впереди
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)}
	return f
}

func validRequest() *Request {
	return &Request{
		ActorID:       7,
		AppointmentID: 1,
		RequestedDate: requestedDate,
		RequestedTime: "11:00",
	}
}

func TestExecute_ApprovalGatedCreatesPending(t *testing.T) {
	f := newFixture(testSettings(true))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.Applied)
	require.NotNil(t, resp.Reschedule)
	assert.Equal(t, "pending", resp.Reschedule.Status)

	// Запись не изменена до одобрения
	assert.False(t, f.appts.updated)

	require.Len(t, f.activity.events, 1)
	assert.Equal(t, domain.EventRescheduleRequested, f.activity.events[0].EventType)
}

func TestExecute_AutoApplyUpdatesAppointment(t *testing.T) {
	f := newFixture(testSettings(false))

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Applied)
	require.NotNil(t, resp.Appointment)
	assert.Equal(t, types.TimeString("11:00"), resp.Appointment.StartTime)

	assert.True(t, f.appts.updated)
	assert.Equal(t, requestedDate, f.appts.updatedDate)
	assert.Equal(t, types.TimeString("11:00"), f.appts.updatedTime)
}

func TestExecute_AutoApplyConflictFails(t *testing.T) {
	f := newFixture(testSettings(false))
	f.appts.dayAppts = []*domain.Appointment{
		{
			ID: 2, BusinessID: 1, WorkerID: 100, CustomerID: 8,
			AppointmentDate: requestedDate, StartTime: "11:00", DurationMinutes: 30,
			Status: domain.StatusConfirmed,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.False(t, f.appts.updated)
}

func TestExecute_AutoApplyIgnoresSelfConflict(t *testing.T) {
	// Перенос в пределах того же дня: старая запись не конфликтует сама с собой
	f := newFixture(testSettings(false))
	f.appts.dayAppts = []*domain.Appointment{f.appts.appointment}

	req := validRequest()
	req.RequestedDate = currentDate
	req.RequestedTime = "10:15" // пересекается со старым [10:00,10:30)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, f.appts.updated)
}

func TestExecute_AutoApplyOutsideWorkingHours(t *testing.T) {
	f := newFixture(testSettings(false))

	// Услуга на 30 минут не помещается до закрытия в 18:00
	req := validRequest()
	req.RequestedTime = "17:45"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	assert.False(t, f.appts.updated)

	// Воскресенье - нерабочий день
	req = validRequest()
	req.RequestedDate = time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	assert.False(t, f.appts.updated)
}

func TestExecute_AutoApplyLeadTimeCutoffTodayOnly(t *testing.T) {
	f := newFixture(testSettings(false))
	// Сейчас 10:50: на сегодня доступны слоты не раньше 11:05
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 2, 10, 50, 0, 0, time.UTC)}

	req := validRequest()
	req.RequestedDate = currentDate
	req.RequestedTime = "11:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
	assert.False(t, f.appts.updated)

	// На будущую дату упреждение не действует
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.True(t, f.appts.updated)
}

func TestExecute_AutoApplyPastDateRejected(t *testing.T) {
	f := newFixture(testSettings(false))
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.False(t, f.appts.updated)
}

func TestExecute_RescheduleNotAllowed(t *testing.T) {
	settings := testSettings(true)
	settings.AllowCustomerReschedule = false
	f := newFixture(settings)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrRescheduleNotAllowed)

	// Ничего не сохранено
	assert.Nil(t, f.reschedule.created)
	assert.Empty(t, f.activity.events)
}

func TestExecute_NoOpRescheduleRejected(t *testing.T) {
	f := newFixture(testSettings(true))

	req := validRequest()
	req.RequestedDate = currentDate
	req.RequestedTime = "10:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoOpReschedule)
	assert.Nil(t, f.reschedule.created)
}

func TestExecute_CancelledAppointment(t *testing.T) {
	f := newFixture(testSettings(true))
	f.appts.appointment.Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAppointmentCancelled)
}

func TestExecute_PendingRequestExists(t *testing.T) {
	f := newFixture(testSettings(true))
	f.reschedule.pending = &domain.RescheduleRequest{ID: 50, AppointmentID: 1, Status: domain.ReschedulePending}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPendingRequestExists)
}

func TestExecute_OnlyOwnerCanReschedule(t *testing.T) {
	f := newFixture(testSettings(true))

	req := validRequest()
	req.ActorID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	f := newFixture(testSettings(true))

	req := validRequest()
	req.AppointmentID = 404

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
