package domain

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// RescheduleStatus represents the state of a reschedule request
type RescheduleStatus string

const (
	ReschedulePending  RescheduleStatus = "pending"
	RescheduleApproved RescheduleStatus = "approved"
	RescheduleRejected RescheduleStatus = "rejected"
)

// RescheduleRequest is a customer-initiated request to move an appointment
// to a new date and time. Approved and Rejected are terminal; a resolved
// request is never reopened.
type RescheduleRequest struct {
	ID            int64
	AppointmentID int64
	RequestedDate time.Time
	RequestedTime types.TimeString
	Status        RescheduleStatus
	Message       *string // сообщение администратора при отклонении

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// IsPending returns true if the request has not been resolved yet.
func (r *RescheduleRequest) IsPending() bool {
	return r.Status == ReschedulePending
}

// IsResolved returns true if the request reached a terminal state.
func (r *RescheduleRequest) IsResolved() bool {
	return r.Status == RescheduleApproved || r.Status == RescheduleRejected
}
