package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

var testDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func appt(id, workerID int64, start types.TimeString, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		WorkerID:        workerID,
		AppointmentDate: testDay,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func groupAppt(id, workerID int64, start types.TimeString, duration, maxCapacity int) *domain.Appointment {
	a := appt(id, workerID, start, duration, domain.StatusConfirmed)
	a.IsGroup = true
	a.MaxCapacity = &maxCapacity
	return a
}

func TestHasConflict_HalfOpenIntervals(t *testing.T) {
	existing := []*domain.Appointment{
		appt(1, 7, "09:00", 30, domain.StatusConfirmed),
	}

	// Встык после существующей записи - не конфликт
	assert.False(t, HasConflict(testDay, "09:30", 30, 7, existing))

	// Встык до существующей записи - не конфликт
	assert.False(t, HasConflict(testDay, "08:30", 30, 7, existing))

	// Реальное пересечение
	assert.True(t, HasConflict(testDay, "09:15", 30, 7, existing))

	// Кандидат целиком накрывает запись
	assert.True(t, HasConflict(testDay, "08:45", 60, 7, existing))
}

func TestHasConflict_IgnoresOtherWorkersAndDates(t *testing.T) {
	existing := []*domain.Appointment{
		appt(1, 7, "09:00", 30, domain.StatusConfirmed),
	}

	// Другой работник
	assert.False(t, HasConflict(testDay, "09:00", 30, 8, existing))

	// Другая дата
	otherDay := testDay.AddDate(0, 0, 1)
	assert.False(t, HasConflict(otherDay, "09:00", 30, 7, existing))
}

func TestHasConflict_CancelledExcluded(t *testing.T) {
	existing := []*domain.Appointment{
		appt(1, 7, "09:00", 30, domain.StatusCancelled),
	}

	assert.False(t, HasConflict(testDay, "09:00", 30, 7, existing))
}

func TestHasConflict_UnparsableStartNeverBookable(t *testing.T) {
	// Неразборчивое время кандидата считается конфликтом, а не свободным слотом
	assert.True(t, HasConflict(testDay, "garbage", 30, 7, nil))
	assert.False(t, IsSlotBookable(testDay, "garbage", ServiceSpec{DurationMinutes: 30}, 7, nil))
	assert.False(t, IsSlotBookable(testDay, "garbage", ServiceSpec{DurationMinutes: 30, IsGroup: true, MaxCapacity: 3}, 7, nil))
}

func TestIsSlotBookable_Individual(t *testing.T) {
	svc := ServiceSpec{DurationMinutes: 30}

	existing := []*domain.Appointment{
		appt(1, 7, "09:00", 30, domain.StatusConfirmed),
	}

	assert.False(t, IsSlotBookable(testDay, "09:00", svc, 7, existing))
	assert.True(t, IsSlotBookable(testDay, "09:30", svc, 7, existing))
}

func TestIsSlotBookable_GroupCapacity(t *testing.T) {
	svc := ServiceSpec{DurationMinutes: 60, IsGroup: true, MaxCapacity: 3}

	// Две участницы из трёх - можно присоединиться
	existing := []*domain.Appointment{
		groupAppt(1, 7, "10:00", 60, 3),
		groupAppt(2, 7, "10:00", 60, 3),
	}
	assert.True(t, IsSlotBookable(testDay, "10:00", svc, 7, existing))
	assert.Equal(t, 1, SpotsLeft(testDay, "10:00", svc, 7, existing))

	// Сессия заполнена
	existing = append(existing, groupAppt(3, 7, "10:00", 60, 3))
	assert.False(t, IsSlotBookable(testDay, "10:00", svc, 7, existing))
	assert.Equal(t, 0, SpotsLeft(testDay, "10:00", svc, 7, existing))
}

func TestIsSlotBookable_GroupVsIndividualOverlap(t *testing.T) {
	groupSvc := ServiceSpec{DurationMinutes: 60, IsGroup: true, MaxCapacity: 5}
	individualSvc := ServiceSpec{DurationMinutes: 30}

	// Работник занят индивидуальной записью - групповую поверх не поставить
	existing := []*domain.Appointment{
		appt(1, 7, "10:15", 30, domain.StatusConfirmed),
	}
	assert.False(t, IsSlotBookable(testDay, "10:00", groupSvc, 7, existing))

	// И наоборот: индивидуальную поверх групповой сессии не поставить
	existing = []*domain.Appointment{
		groupAppt(2, 7, "10:00", 60, 5),
	}
	assert.False(t, IsSlotBookable(testDay, "10:30", individualSvc, 7, existing))

	// Групповая сессия с другим стартом тоже конфликт
	assert.False(t, IsSlotBookable(testDay, "10:30", groupSvc, 7, existing))
}

func TestCountParticipants(t *testing.T) {
	existing := []*domain.Appointment{
		groupAppt(1, 7, "10:00", 60, 3),
		groupAppt(2, 7, "10:00", 60, 3),
		groupAppt(3, 8, "10:00", 60, 3),                 // другой работник
		appt(4, 7, "10:00", 60, domain.StatusCancelled), // отменена
	}

	assert.Equal(t, 2, CountParticipants(testDay, "10:00", 7, existing))
}

func TestExcludeAppointment(t *testing.T) {
	existing := []*domain.Appointment{
		appt(1, 7, "09:00", 30, domain.StatusConfirmed),
		appt(2, 7, "10:00", 30, domain.StatusConfirmed),
	}

	filtered := ExcludeAppointment(existing, 1)
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].ID)

	// Перенос записи на пересекающееся с ней самой время - не конфликт
	assert.False(t, HasConflict(testDay, "09:15", 30, 7, filtered))
}
