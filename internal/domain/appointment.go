package domain

import (
	"time"

	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// PaymentStatus represents the payment state reported by the payment provider
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ZoneSelection is a snapshot of a service zone chosen by the client.
// Copied at booking time so later edits of the AvailableDay do not affect
// already created appointments.
type ZoneSelection struct {
	Name            string
	Price           float64
	DurationMinutes int
}

// Appointment represents a client booking in the system
type Appointment struct {
	ID              int64
	ClientName      string
	ClientLastName  string
	ClientPhone     string
	AppointmentDate time.Time // normalized to midnight UTC
	StartTime       types.TimeString
	EndTime         types.TimeString
	SelectedZones   []ZoneSelection

	// Derived once at creation
	TotalPrice           float64
	TotalDurationMinutes int
	DepositAmount        float64

	Status        AppointmentStatus
	PaymentID     *string
	PaymentStatus PaymentStatus

	CancellationReason *string
	CancelledAt        *time.Time
	HoursInAdvance     *int
	RefundEligible     bool

	WhatsAppSent   bool
	WhatsAppSentAt *time.Time
	WhatsAppMethod *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the appointment blocks its slot at the given moment:
// confirmed, or pending created within the grace period
func (a *Appointment) IsOccupying(now time.Time) bool {
	switch a.Status {
	case StatusConfirmed:
		return true
	case StatusPending:
		return now.Sub(a.CreatedAt) <= PendingGracePeriod
	default:
		return false
	}
}

// IsExpired returns true for a pending appointment older than the grace period
func (a *Appointment) IsExpired(now time.Time) bool {
	return a.Status == StatusPending && now.Sub(a.CreatedAt) > PendingGracePeriod
}

// CanBeCancelled returns true if the appointment is in a cancelable status.
// The cancellation notice rule is checked separately by the service layer.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusConfirmed
}

// StartAt returns the exact UTC moment the appointment starts
func (a *Appointment) StartAt() (time.Time, error) {
	minutes, err := a.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return a.AppointmentDate.Add(time.Duration(minutes) * time.Minute), nil
}

// AppointmentsFilter фильтр для выборки записей администратором
type AppointmentsFilter struct {
	Date   *time.Time         // Конкретный день (нормализованный), nil - все дни
	Status *AppointmentStatus // Фильтр по статусу, nil - все статусы
}
