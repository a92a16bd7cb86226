package appointments

import (
	"context"
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
	Cancel(ctx context.Context, id int64, reason string, hoursInAdvance int) error
	MarkWhatsAppSent(ctx context.Context, id int64, method string) error
}

// WhatsAppSender интерфейс клиента отправки WhatsApp-сообщений
type WhatsAppSender interface {
	Send(ctx context.Context, phone, message string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
