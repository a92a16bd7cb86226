package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/internal/infra/storage/availableday"
)

// --- Фейки ---

type fakeAppointmentRepo struct {
	occupying []*domain.Appointment
	swept     int64

	sweepCutoff time.Time
}

func (f *fakeAppointmentRepo) GetOccupyingByDate(ctx context.Context, date, freshCutoff time.Time) ([]*domain.Appointment, error) {
	return f.occupying, nil
}

func (f *fakeAppointmentRepo) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	f.sweepCutoff = cutoff
	return f.swept, nil
}

type fakeDayRepo struct {
	day *domain.AvailableDay
	err error
}

func (f *fakeDayRepo) GetEnabledByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.day, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Тесты ---

var testNow = time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)

func newTestUseCase(aptRepo *fakeAppointmentRepo, dayRepo *fakeDayRepo) *UseCase {
	uc := NewUseCase(aptRepo, dayRepo, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_ReturnsSlots(t *testing.T) {
	aptRepo := &fakeAppointmentRepo{}
	dayRepo := &fakeDayRepo{day: &domain.AvailableDay{
		ID:        1,
		Date:      time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		IsEnabled: true,
		Windows: []domain.TimeWindow{
			{Start: "09:00", End: "12:00", IsAvailable: true},
		},
	}}

	uc := newTestUseCase(aptRepo, dayRepo)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-25", DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), resp.Date)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 5)

	// Просроченные pending-записи зачищены до чтения занятости
	assert.Equal(t, testNow.Add(-domain.PendingGracePeriod), aptRepo.sweepCutoff)
}

func TestExecute_DayNotConfigured(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDayRepo{err: availableday.ErrDayNotFound})

	// Отсутствие дня - не ошибка, а пустой список слотов
	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-06-25", DurationMinutes: 60})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDayRepo{})

	_, err := uc.Execute(context.Background(), &Request{Date: "", DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "2025-06-25", DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "garbage", DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
