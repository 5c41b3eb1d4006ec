package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked appointment in the system
type Appointment struct {
	ID              int64
	TenantID        string
	CustomerID      int64
	ServiceID       int64
	StaffID         *string
	ScheduledAt     time.Time
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized service data for history
	ServiceName string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConsumesCapacity returns true if the appointment holds a slot
// Every status except cancelled keeps the slot occupied
func (a *Appointment) ConsumesCapacity() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// AppointmentInterval is the capacity-accounting projection of an appointment:
// a start instant plus a duration. Durations come from the joined service record;
// when the record has no duration the store substitutes the named default and
// sets DurationDefaulted so callers can tell the fallback apart from real data.
type AppointmentInterval struct {
	TenantID          string
	Start             time.Time
	DurationMinutes   int
	DurationDefaulted bool
	Status            AppointmentStatus
}

// End returns the exclusive end instant of the interval
func (i AppointmentInterval) End() time.Time {
	return i.Start.Add(time.Duration(i.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the half-open interval [start, end) in unix seconds
// intersects this appointment. Intervals that merely touch do not overlap:
// aStart < bEnd && bStart < aEnd with strict comparisons.
func (i AppointmentInterval) Overlaps(startUnix, endUnix int64) bool {
	return i.Start.Unix() < endUnix && i.End().Unix() > startUnix
}

// ConsumesCapacity mirrors Appointment.ConsumesCapacity for the projection
func (i AppointmentInterval) ConsumesCapacity() bool {
	return i.Status != StatusCancelled
}

// TenantAppointmentsFilter фильтр для получения встреч тенанта
type TenantAppointmentsFilter struct {
	TenantID         string
	Date             *time.Time         // Фильтр по дате (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отмененные встречи
}
