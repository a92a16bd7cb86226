package availabledays

import (
	"context"
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
)

// AvailableDayRepository интерфейс репозитория доступных дней
type AvailableDayRepository interface {
	Create(ctx context.Context, day *domain.AvailableDay) (*domain.AvailableDay, error)
	Update(ctx context.Context, id int64, day *domain.AvailableDay) (*domain.AvailableDay, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailableDay, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error)
	GetEnabledByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error)
	List(ctx context.Context) ([]*domain.AvailableDay, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
