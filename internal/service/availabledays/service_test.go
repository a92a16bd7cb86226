package availabledays

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	dayRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/availableday"
	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
	"github.com/m04kA/DPL-BookingService/pkg/dateutil"
	"github.com/m04kA/DPL-BookingService/pkg/ptr"
)

// --- Фейки ---

type fakeDayRepo struct {
	day       *domain.AvailableDay
	days      []*domain.AvailableDay
	createErr error
	getErr    error

	created *domain.AvailableDay
	updated *domain.AvailableDay
}

func (f *fakeDayRepo) Create(ctx context.Context, day *domain.AvailableDay) (*domain.AvailableDay, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *day
	created.ID = 10
	f.created = &created
	return &created, nil
}

func (f *fakeDayRepo) Update(ctx context.Context, id int64, day *domain.AvailableDay) (*domain.AvailableDay, error) {
	updated := *day
	updated.ID = id
	f.updated = &updated
	return &updated, nil
}

func (f *fakeDayRepo) GetByID(ctx context.Context, id int64) (*domain.AvailableDay, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.day, nil
}

func (f *fakeDayRepo) GetByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.day, nil
}

func (f *fakeDayRepo) GetEnabledByDate(ctx context.Context, date time.Time) (*domain.AvailableDay, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.day, nil
}

func (f *fakeDayRepo) List(ctx context.Context) ([]*domain.AvailableDay, error) {
	return f.days, nil
}

// fakeTxManager выполняет функции напрямую, без реальных транзакций
type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Хелперы ---

func newTestService(repo *fakeDayRepo) *Service {
	return NewService(repo, &fakeTxManager{}, nopLogger{})
}

func createRequest() *models.CreateDayRequest {
	return &models.CreateDayRequest{
		Date: "2025-10-15",
		Windows: []models.WindowPayload{
			{Start: "09:00", End: "13:00"},
			{Start: "14:00", End: "18:00"},
		},
		Zones: []models.ZonePayload{
			{Name: "Piernas completas", Price: 2000, DurationMinutes: 60},
			{Name: "Axilas", Price: 1000, DurationMinutes: 30},
		},
	}
}

func existingDay() *domain.AvailableDay {
	return &domain.AvailableDay{
		ID:        10,
		Date:      dateutil.MustNormalize(time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)),
		IsEnabled: true,
		Windows: []domain.TimeWindow{
			{Start: "09:00", End: "18:00", IsAvailable: true},
		},
		Zones: []domain.Zone{
			{Name: "Axilas", Price: 1000, DurationMinutes: 30},
		},
	}
}

// --- Тесты ---

func TestCreate(t *testing.T) {
	repo := &fakeDayRepo{}
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.True(t, resp.IsEnabled)
	assert.Len(t, resp.Windows, 2)
	assert.Len(t, resp.Zones, 2)

	// Дата нормализована к полуночи UTC
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), repo.created.Date)
	// Окна без явного флага доступны по умолчанию
	assert.True(t, repo.created.Windows[0].IsAvailable)
}

func TestCreate_Disabled(t *testing.T) {
	repo := &fakeDayRepo{}
	svc := newTestService(repo)

	req := createRequest()
	req.IsEnabled = ptr.Ptr(false)

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.IsEnabled)
}

func TestCreate_Duplicate(t *testing.T) {
	svc := newTestService(&fakeDayRepo{createErr: dayRepo.ErrDuplicateDay})

	_, err := svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrDayAlreadyExists)
}

func TestCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateDayRequest)
	}{
		{
			name:   "некорректная дата",
			mutate: func(r *models.CreateDayRequest) { r.Date = "garbage" },
		},
		{
			name: "некорректное время окна",
			mutate: func(r *models.CreateDayRequest) {
				r.Windows = []models.WindowPayload{{Start: "9:00", End: "13:00"}}
			},
		},
		{
			name: "пустое имя зоны",
			mutate: func(r *models.CreateDayRequest) {
				r.Zones = []models.ZonePayload{{Name: "", Price: 1000, DurationMinutes: 30}}
			},
		},
		{
			name: "отрицательная цена зоны",
			mutate: func(r *models.CreateDayRequest) {
				r.Zones = []models.ZonePayload{{Name: "Axilas", Price: -5, DurationMinutes: 30}}
			},
		},
		{
			name: "нулевая длительность зоны",
			mutate: func(r *models.CreateDayRequest) {
				r.Zones = []models.ZonePayload{{Name: "Axilas", Price: 1000, DurationMinutes: 0}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(req)

			_, err := newTestService(&fakeDayRepo{}).Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_ReplacesWindowsAndZones(t *testing.T) {
	repo := &fakeDayRepo{day: existingDay()}
	svc := newTestService(repo)

	req := &models.UpdateDayRequest{
		IsEnabled: ptr.Ptr(false),
		Windows: []models.WindowPayload{
			{Start: "10:00", End: "16:00"},
		},
		Zones: []models.ZonePayload{
			{Name: "Piernas completas", Price: 2500, DurationMinutes: 60},
		},
	}

	resp, err := svc.Update(context.Background(), 10, req)
	require.NoError(t, err)

	assert.False(t, resp.IsEnabled)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, "10:00", resp.Windows[0].Start)
	require.Len(t, resp.Zones, 1)
	assert.Equal(t, 2500.0, resp.Zones[0].Price)
}

func TestUpdate_NilFieldsKeepExisting(t *testing.T) {
	repo := &fakeDayRepo{day: existingDay()}
	svc := newTestService(repo)

	resp, err := svc.Update(context.Background(), 10, &models.UpdateDayRequest{})
	require.NoError(t, err)

	assert.True(t, resp.IsEnabled)
	assert.Len(t, resp.Windows, 1)
	assert.Len(t, resp.Zones, 1)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&fakeDayRepo{getErr: dayRepo.ErrDayNotFound})

	_, err := svc.Update(context.Background(), 99, &models.UpdateDayRequest{})
	assert.ErrorIs(t, err, ErrDayNotFound)
}

func TestList(t *testing.T) {
	repo := &fakeDayRepo{days: []*domain.AvailableDay{existingDay()}}
	svc := newTestService(repo)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Days, 1)
}

func TestGetZonesForDate(t *testing.T) {
	repo := &fakeDayRepo{day: existingDay()}
	svc := newTestService(repo)

	resp, err := svc.GetZonesForDate(context.Background(), "2025-10-15")
	require.NoError(t, err)

	assert.Equal(t, "2025-10-15", resp.Date)
	require.Len(t, resp.Zones, 1)
	assert.Equal(t, "Axilas", resp.Zones[0].Name)
}

func TestGetZonesForDate_NotFound(t *testing.T) {
	svc := newTestService(&fakeDayRepo{getErr: dayRepo.ErrDayNotFound})

	_, err := svc.GetZonesForDate(context.Background(), "2025-10-15")
	assert.ErrorIs(t, err, ErrDayNotFound)
}
