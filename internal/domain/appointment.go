package domain

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusCreated   AppointmentStatus = "created"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// CreatedBy tags who initiated the booking; drives which records surface in
// the business activity views
type CreatedBy string

const (
	CreatedByCustomer CreatedBy = "customer"
	CreatedByAdmin    CreatedBy = "admin"
)

// Appointment represents a booked time slot for a worker and customer.
// Group services produce one row per participant sharing the same
// (worker, date, start time); rows are never physically deleted.
type Appointment struct {
	ID              int64
	BusinessID      int64
	ServiceID       int64
	WorkerID        int64
	CustomerID      int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	CreatedBy       CreatedBy
	IsGroup         bool
	MaxCapacity     *int // только для групповых услуг

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// EndTime returns the appointment end as a time-of-day string.
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// OccupiesSlot reports whether the appointment starts exactly at the given
// (date, time) for the given worker. Used for group-participant counting.
func (a *Appointment) OccupiesSlot(workerID int64, date time.Time, start types.TimeString) bool {
	return a.WorkerID == workerID &&
		sameDay(a.AppointmentDate, date) &&
		a.StartTime == start
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// BusinessAppointmentsFilter фильтр для получения записей бизнеса
type BusinessAppointmentsFilter struct {
	BusinessID       int64              // Обязательный параметр
	WorkerID         *int64             // Фильтр по работнику (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}
