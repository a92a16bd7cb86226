package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetOccupyingByDate получает записи, занимающие слоты на дату
	// (confirmed и свежие pending), отсортированные по времени начала
	GetOccupyingByDate(ctx context.Context, date time.Time, freshCutoff time.Time) ([]*domain.Appointment, error)
	// DeleteExpiredPending удаляет pending-записи старше cutoff
	DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error)
}

// AvailableDayRepository интерфейс репозитория доступных дней
type AvailableDayRepository interface {
	GetEnabledByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error)
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
