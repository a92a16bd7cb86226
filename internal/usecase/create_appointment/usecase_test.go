package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DPL-BookingService/internal/infra/storage/availableday"
	"github.com/m04kA/DPL-BookingService/internal/integrations/mercadopago"
	"github.com/m04kA/DPL-BookingService/pkg/dateutil"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// --- Фейки ---

type fakeAppointmentRepo struct {
	occupying []*domain.Appointment
	createErr error

	created       *domain.Appointment
	sweepCalled   bool
	deletedID     int64
	deleteCalled  bool
	deleteDeleted bool
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *apt
	created.ID = 42
	created.CreatedAt = time.Now().UTC()
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetOccupyingByDate(ctx context.Context, date, freshCutoff time.Time) ([]*domain.Appointment, error) {
	return f.occupying, nil
}

func (f *fakeAppointmentRepo) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	f.sweepCalled = true
	return 0, nil
}

func (f *fakeAppointmentRepo) DeleteIfPending(ctx context.Context, id int64) (bool, error) {
	f.deleteCalled = true
	f.deletedID = id
	return f.deleteDeleted, nil
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

type fakePaymentClient struct {
	preference *mercadopago.Preference
	err        error

	items    []mercadopago.PreferenceItem
	metadata mercadopago.PreferenceMetadata
	called   bool
}

func (f *fakePaymentClient) CreatePreference(ctx context.Context, items []mercadopago.PreferenceItem, metadata mercadopago.PreferenceMetadata) (*mercadopago.Preference, error) {
	f.called = true
	f.items = items
	f.metadata = metadata
	if f.err != nil {
		return nil, f.err
	}
	return f.preference, nil
}

// fakeTxManager выполняет функцию напрямую, без реальной транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// --- Хелперы ---

func testDay() *domain.AvailableDay {
	return &domain.AvailableDay{
		ID:        1,
		Date:      dateutil.MustNormalize(time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)),
		IsEnabled: true,
		Windows: []domain.TimeWindow{
			{Start: "09:00", End: "18:00", IsAvailable: true},
		},
	}
}

func testRequest() *Request {
	return &Request{
		ClientName:     "Ana",
		ClientLastName: "García",
		ClientPhone:    "+5491122334455",
		Date:           "2025-10-15",
		StartTime:      types.TimeString("10:00"),
		SelectedZones: []ZoneInput{
			{Name: "Piernas completas", Price: 2000, DurationMinutes: 60},
			{Name: "Axilas", Price: 1000, DurationMinutes: 30},
		},
	}
}

func newTestUseCase(
	aptRepo *fakeAppointmentRepo,
	dayRepo *fakeDayRepo,
	payment *fakePaymentClient,
) *UseCase {
	uc := NewUseCase(aptRepo, dayRepo, payment, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	return uc
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	aptRepo := &fakeAppointmentRepo{}
	dayRepo := &fakeDayRepo{day: testDay()}
	payment := &fakePaymentClient{
		preference: &mercadopago.Preference{
			ID:        "pref-123",
			InitPoint: "https://mercadopago.test/checkout/pref-123",
		},
	}

	uc := newTestUseCase(aptRepo, dayRepo, payment)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.AppointmentID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
	assert.Equal(t, 3000.0, resp.TotalPrice)
	assert.Equal(t, 90, resp.TotalDurationMinutes)
	assert.Equal(t, 1500.0, resp.DepositAmount)
	assert.Equal(t, "pref-123", resp.PreferenceID)
	assert.Equal(t, "https://mercadopago.test/checkout/pref-123", resp.InitPoint)

	// Просроченные pending-записи зачищены перед проверкой занятости
	assert.True(t, aptRepo.sweepCalled)

	// Платёжная позиция на сумму предоплаты, привязана к записи
	require.Len(t, payment.items, 1)
	assert.Equal(t, 1500.0, payment.items[0].UnitPrice)
	assert.Equal(t, 1, payment.items[0].Quantity)
	assert.Equal(t, "42", payment.metadata.AppointmentID)
}

func TestExecute_SlotConflict(t *testing.T) {
	aptRepo := &fakeAppointmentRepo{
		occupying: []*domain.Appointment{
			{StartTime: "11:00", EndTime: "12:00", Status: domain.StatusConfirmed},
		},
	}
	payment := &fakePaymentClient{}
	uc := newTestUseCase(aptRepo, &fakeDayRepo{day: testDay()}, payment)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, aptRepo.created)
	assert.False(t, payment.called)
}

func TestExecute_TouchingAppointmentIsNotConflict(t *testing.T) {
	// Существующая запись заканчивается ровно в начале нового слота
	aptRepo := &fakeAppointmentRepo{
		occupying: []*domain.Appointment{
			{StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		},
	}
	payment := &fakePaymentClient{
		preference: &mercadopago.Preference{ID: "pref-1", InitPoint: "https://mp.test/1"},
	}
	uc := newTestUseCase(aptRepo, &fakeDayRepo{day: testDay()}, payment)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.NoError(t, err)
}

func TestExecute_ConcurrentCreateMapsToConflict(t *testing.T) {
	// Уникальный индекс сработал при конкурентной вставке
	aptRepo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
	uc := newTestUseCase(aptRepo, &fakeDayRepo{day: testDay()}, &fakePaymentClient{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_DayNotAvailable(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeDayRepo{err: availableday.ErrDayNotFound},
		&fakePaymentClient{},
	)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrDayNotAvailable)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	day := testDay()
	day.Windows = []domain.TimeWindow{
		{Start: "09:00", End: "11:00", IsAvailable: true},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDayRepo{day: day}, &fakePaymentClient{})

	// Слот 10:00-11:30 выходит за пределы окна 09:00-11:00
	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_UnpaddedStartTimeRejected(t *testing.T) {
	// "9:30" без ведущего нуля лексикографически больше "10:00",
	// такой запрос обошёл бы проверку пересечений - он должен падать на валидации
	aptRepo := &fakeAppointmentRepo{
		occupying: []*domain.Appointment{
			{StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		},
	}
	payment := &fakePaymentClient{}
	uc := newTestUseCase(aptRepo, &fakeDayRepo{day: testDay()}, payment)

	req := testRequest()
	req.StartTime = "9:30"
	req.SelectedZones = []ZoneInput{{Name: "Piernas completas", Price: 2000, DurationMinutes: 60}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, aptRepo.created)
	assert.False(t, payment.called)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDayRepo{day: testDay()}, &fakePaymentClient{})

	req := testRequest()
	req.Date = "2025-09-30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_PaymentFailureReleasesSlot(t *testing.T) {
	aptRepo := &fakeAppointmentRepo{deleteDeleted: true}
	payment := &fakePaymentClient{err: errors.New("mercadopago: status 500")}
	uc := newTestUseCase(aptRepo, &fakeDayRepo{day: testDay()}, payment)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPaymentProvider)

	// Pending-запись без платёжной ссылки освобождает слот
	assert.True(t, aptRepo.deleteCalled)
	assert.Equal(t, int64(42), aptRepo.deletedID)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{
			name:   "пустое имя",
			mutate: func(r *Request) { r.ClientName = "" },
		},
		{
			name:   "пустой телефон",
			mutate: func(r *Request) { r.ClientPhone = "" },
		},
		{
			name:   "нет зон",
			mutate: func(r *Request) { r.SelectedZones = nil },
		},
		{
			name:   "некорректное время",
			mutate: func(r *Request) { r.StartTime = "9:00" },
		},
		{
			name: "нулевая цена зоны",
			mutate: func(r *Request) {
				r.SelectedZones = []ZoneInput{{Name: "Axilas", Price: 0, DurationMinutes: 30}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeDayRepo{day: testDay()}, &fakePaymentClient{})

			req := testRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSlotFitsWindows(t *testing.T) {
	windows := []domain.TimeWindow{
		{Start: "09:00", End: "12:00", IsAvailable: true},
		{Start: "14:00", End: "18:00", IsAvailable: true},
		{Start: "19:00", End: "22:00", IsAvailable: false},
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"целиком в первом окне", "09:00", "12:00", true},
		{"целиком во втором окне", "15:00", "16:30", true},
		{"пересекает границу окон", "11:30", "14:30", false},
		{"в перерыве между окнами", "12:30", "13:30", false},
		{"в недоступном окне", "19:00", "20:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slotFitsWindows(types.TimeString(tt.start), types.TimeString(tt.end), windows)
			assert.Equal(t, tt.want, got)
		})
	}
}
