package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEventType типы событий журнала активности
type ActivityEventType string

const (
	EventAppointmentCreated   ActivityEventType = "appointment_created"
	EventAppointmentCancelled ActivityEventType = "appointment_cancelled"
	EventRescheduleRequested  ActivityEventType = "reschedule_requested"
	EventRescheduleApproved   ActivityEventType = "reschedule_approved"
	EventRescheduleRejected   ActivityEventType = "reschedule_rejected"
)

// ActivityEvent is an append-only audit record of a booking action.
type ActivityEvent struct {
	ID            uuid.UUID
	BusinessID    int64
	AppointmentID int64
	EventType     ActivityEventType
	ActorID       int64
	Details       map[string]interface{}
	CreatedAt     time.Time
}
