package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	dayRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/availableday"
	"github.com/m04kA/DPL-BookingService/pkg/dateutil"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	dayRepo         AvailableDayRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	dayRepo AvailableDayRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		dayRepo:         dayRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d", req.Date, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем дату к полуночи UTC
	date, err := dateutil.NormalizeString(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	now := uc.timeProvider.Now()
	freshCutoff := now.Add(-domain.PendingGracePeriod)

	// 3. Чистим просроченные pending-записи до чтения занятости
	if deleted, err := uc.appointmentRepo.DeleteExpiredPending(ctx, freshCutoff); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to sweep expired pending: %v", err)
		return nil, fmt.Errorf("%w: failed to sweep expired pending: %v", ErrInternal, err)
	} else if deleted > 0 {
		uc.logger.Info("GetAvailableSlots: swept %d expired pending appointments", deleted)
	}

	// 4. Получаем конфигурацию дня, отсутствие или выключенный день - пустой ответ
	day, err := uc.dayRepo.GetEnabledByDate(ctx, date)
	if err != nil {
		if errors.Is(err, dayRepo.ErrDayNotFound) {
			uc.logger.Info("GetAvailableSlots: no enabled day for date=%s", req.Date)
			return &Response{
				Date:            date,
				DurationMinutes: req.DurationMinutes,
				Slots:           []domain.Slot{},
			}, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get day for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to get available day: %v", ErrInternal, err)
	}

	// 5. Получаем занятые записи (confirmed и свежие pending)
	occupying, err := uc.appointmentRepo.GetOccupyingByDate(ctx, date, freshCutoff)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupying appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты по окнам дня
	slots, err := generateSlots(day.Windows, req.DurationMinutes, occupying)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s, duration=%d",
		len(slots), req.Date, req.DurationMinutes)

	return &Response{
		Date:            date,
		DurationMinutes: req.DurationMinutes,
		Slots:           slots,
	}, nil
}
