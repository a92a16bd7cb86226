package domain

import "time"

// Booking rules
const (
	// SlotStepMinutes шаг генерации кандидатов слотов внутри окна
	SlotStepMinutes = 30

	// PendingGracePeriod сколько неподтверждённая (pending) запись блокирует свой слот
	PendingGracePeriod = 15 * time.Minute

	// CancellationNoticeHours минимальное количество полных часов до начала записи,
	// при котором администратор может отменить подтверждённую запись
	CancellationNoticeHours = 36

	// DepositRate доля от полной стоимости, оплачиваемая при бронировании
	DepositRate = 0.5
)

// DefaultCancellationReason причина отмены по умолчанию
const DefaultCancellationReason = "Cancelado por administrador"

// Validation constants
const (
	MaxClientNameLength         = 100
	MaxPhoneLength              = 32
	MaxZoneNameLength           = 100
	MaxZonesPerAppointment      = 20
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, при которых запись занимает свой слот
// (pending дополнительно фильтруется по свежести created_at)
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
