package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/internal/integrations/mercadopago"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	GetOccupyingByDate(ctx context.Context, date time.Time, freshCutoff time.Time) ([]*domain.Appointment, error)
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteIfPending(ctx context.Context, id int64) (bool, error)
}

// AvailableDayRepository интерфейс репозитория доступных дней
type AvailableDayRepository interface {
	GetEnabledByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error)
}

// PaymentClient интерфейс клиента платёжного провайдера
type PaymentClient interface {
	CreatePreference(ctx context.Context, items []mercadopago.PreferenceItem, metadata mercadopago.PreferenceMetadata) (*mercadopago.Preference, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
