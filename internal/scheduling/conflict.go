package scheduling

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// ServiceSpec carries the scheduling-relevant attributes of a service.
type ServiceSpec struct {
	DurationMinutes int
	IsGroup         bool
	MaxCapacity     int
}

// HasConflict reports whether a candidate booking [start, start+duration)
// for the given worker and date overlaps an existing non-cancelled
// appointment. Intervals are half-open: back-to-back bookings
// (candidate end == appointment start, or vice versa) do not conflict.
//
// Single source of truth for "is this slot free" — invoked both at listing
// time and again at commit time to close the race between display and
// booking.
func HasConflict(date time.Time, start types.TimeString, durationMinutes int, workerID int64, appointments []*domain.Appointment) bool {
	candidateEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Неразборчивое время кандидата не может считаться свободным
		return true
	}

	for _, appt := range appointments {
		if !occupiesDay(appt, workerID, date) {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			// Некорректное время записи - пропускаем
			continue
		}

		// Строгие неравенства: границы соприкасаются, но не пересекаются
		if appt.StartTime.IsBefore(candidateEnd) && apptEnd.IsAfter(start) {
			return true
		}
	}

	return false
}

// CountParticipants counts non-cancelled appointments starting exactly at
// (workerID, date, start) — the current participant count of a group session.
func CountParticipants(date time.Time, start types.TimeString, workerID int64, appointments []*domain.Appointment) int {
	count := 0
	for _, appt := range appointments {
		if appt.IsCancelled() {
			continue
		}
		if appt.OccupiesSlot(workerID, date, start) {
			count++
		}
	}
	return count
}

// IsSlotBookable decides whether a candidate booking of svc at (date, start)
// for the given worker can be committed against the existing appointments.
//
// For an individual service any overlap is a conflict. For a group service an
// existing group session at the exact same start is joinable while its
// participant count is below MaxCapacity; any other overlap — an individual
// appointment, or a group session at a different start — still conflicts,
// since one worker cannot run two overlapping sessions.
func IsSlotBookable(date time.Time, start types.TimeString, svc ServiceSpec, workerID int64, appointments []*domain.Appointment) bool {
	if !svc.IsGroup {
		return !HasConflict(date, start, svc.DurationMinutes, workerID, appointments)
	}

	candidateEnd, err := start.AddMinutes(svc.DurationMinutes)
	if err != nil {
		return false
	}

	participants := 0
	for _, appt := range appointments {
		if !occupiesDay(appt, workerID, date) {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if !appt.StartTime.IsBefore(candidateEnd) || !apptEnd.IsAfter(start) {
			// Нет пересечения
			continue
		}

		if appt.IsGroup && appt.StartTime == start {
			participants++
			continue
		}

		// Пересечение с индивидуальной записью или с чужой групповой сессией
		return false
	}

	if participants == 0 {
		return true
	}
	return participants < svc.MaxCapacity
}

// SpotsLeft returns how many spots remain for svc at (date, start, worker).
// Individual services have a single spot; group services have
// MaxCapacity - current participants. Returns 0 when the slot is not
// bookable at all.
func SpotsLeft(date time.Time, start types.TimeString, svc ServiceSpec, workerID int64, appointments []*domain.Appointment) int {
	if !IsSlotBookable(date, start, svc, workerID, appointments) {
		return 0
	}
	if !svc.IsGroup {
		return 1
	}
	left := svc.MaxCapacity - CountParticipants(date, start, workerID, appointments)
	if left < 0 {
		return 0
	}
	return left
}

// ExcludeAppointment filters out the appointment with the given id. Used when
// re-validating a reschedule: the moved appointment must not conflict with
// itself.
func ExcludeAppointment(appointments []*domain.Appointment, id int64) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.ID != id {
			result = append(result, appt)
		}
	}
	return result
}

func occupiesDay(appt *domain.Appointment, workerID int64, date time.Time) bool {
	if appt.IsCancelled() {
		return false
	}
	if appt.WorkerID != workerID {
		return false
	}
	y1, m1, d1 := appt.AppointmentDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
