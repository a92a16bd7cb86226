package confirm_payment

import (
	"context"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/internal/integrations/mercadopago"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	SetConfirmed(ctx context.Context, id int64, paymentID string) error
	SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentID string) error
	DeleteIfPending(ctx context.Context, id int64) (bool, error)
	MarkWhatsAppSent(ctx context.Context, id int64, method string) error
}

// PaymentClient интерфейс клиента платёжного провайдера
type PaymentClient interface {
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
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
