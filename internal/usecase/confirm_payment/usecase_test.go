package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DPL-BookingService/internal/integrations/mercadopago"
	"github.com/m04kA/DPL-BookingService/internal/integrations/whatsapp"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// --- Фейки ---

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error
	confirmErr  error
	deleted     bool
	deleteErr   error

	confirmedID    int64
	confirmedPayID string
	paymentStatus  domain.PaymentStatus
	deleteCalledID int64
	markedID       int64
	markedMethod   string
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) SetConfirmed(ctx context.Context, id int64, paymentID string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedID = id
	f.confirmedPayID = paymentID
	return nil
}

func (f *fakeAppointmentRepo) SetPaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus, paymentID string) error {
	f.paymentStatus = status
	return nil
}

func (f *fakeAppointmentRepo) DeleteIfPending(ctx context.Context, id int64) (bool, error) {
	f.deleteCalledID = id
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return f.deleted, nil
}

func (f *fakeAppointmentRepo) MarkWhatsAppSent(ctx context.Context, id int64, method string) error {
	f.markedID = id
	f.markedMethod = method
	return nil
}

type fakePaymentClient struct {
	payment *mercadopago.Payment
	err     error
}

func (f *fakePaymentClient) GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payment, nil
}

type fakeWhatsAppSender struct {
	err    error
	phone  string
	called bool
}

func (f *fakeWhatsAppSender) Send(ctx context.Context, phone, message string) error {
	f.called = true
	f.phone = phone
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Хелперы ---

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              42,
		ClientName:      "Ana",
		ClientLastName:  "García",
		ClientPhone:     "+5491122334455",
		AppointmentDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		Status:          domain.StatusConfirmed,
	}
}

func approvedPayment() *mercadopago.Payment {
	return &mercadopago.Payment{
		ID:       123456,
		Status:   mercadopago.PaymentStatusApproved,
		Metadata: mercadopago.PreferenceMetadata{AppointmentID: "42"},
	}
}

// --- Тесты ---

func TestExecute_ApprovedConfirmsAndNotifies(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	sender := &fakeWhatsAppSender{}
	uc := NewUseCase(repo, &fakePaymentClient{payment: approvedPayment()}, sender, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	require.NoError(t, err)

	assert.Equal(t, ResultConfirmed, resp.Result)
	assert.Equal(t, int64(42), resp.AppointmentID)
	assert.Equal(t, mercadopago.PaymentStatusApproved, resp.PaymentStatus)

	assert.Equal(t, int64(42), repo.confirmedID)
	assert.Equal(t, "123456", repo.confirmedPayID)

	// WhatsApp отправлен и отмечен
	assert.True(t, sender.called)
	assert.Equal(t, "+5491122334455", sender.phone)
	assert.Equal(t, int64(42), repo.markedID)
	assert.Equal(t, whatsapp.Method, repo.markedMethod)
}

func TestExecute_ApprovedSkipsAlreadyNotified(t *testing.T) {
	apt := testAppointment()
	apt.WhatsAppSent = true
	repo := &fakeAppointmentRepo{appointment: apt}
	sender := &fakeWhatsAppSender{}
	uc := NewUseCase(repo, &fakePaymentClient{payment: approvedPayment()}, sender, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	require.NoError(t, err)

	assert.Equal(t, ResultConfirmed, resp.Result)
	assert.False(t, sender.called)
}

func TestExecute_WhatsAppFailureDoesNotFailConfirmation(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: testAppointment()}
	sender := &fakeWhatsAppSender{err: whatsapp.ErrSendFailed}
	uc := NewUseCase(repo, &fakePaymentClient{payment: approvedPayment()}, sender, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	require.NoError(t, err)

	assert.Equal(t, ResultConfirmed, resp.Result)
	// При ошибке отправки отметка не ставится
	assert.Zero(t, repo.markedID)
}

func TestExecute_FailedStatusDeletesPending(t *testing.T) {
	repo := &fakeAppointmentRepo{deleted: true}
	payment := &mercadopago.Payment{
		ID:       123456,
		Status:   "rejected",
		Metadata: mercadopago.PreferenceMetadata{AppointmentID: "42"},
	}
	uc := NewUseCase(repo, &fakePaymentClient{payment: payment}, &fakeWhatsAppSender{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	require.NoError(t, err)

	assert.Equal(t, ResultDeleted, resp.Result)
	assert.Equal(t, "rejected", resp.PaymentStatus)
	assert.Equal(t, int64(42), repo.deleteCalledID)
}

func TestExecute_LateFailureOnConfirmedIsIgnored(t *testing.T) {
	// Запись уже confirmed, DeleteIfPending ничего не удаляет
	repo := &fakeAppointmentRepo{deleted: false}
	payment := &mercadopago.Payment{
		ID:       123456,
		Status:   "cancelled",
		Metadata: mercadopago.PreferenceMetadata{AppointmentID: "42"},
	}
	uc := NewUseCase(repo, &fakePaymentClient{payment: payment}, &fakeWhatsAppSender{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	require.NoError(t, err)

	assert.Equal(t, ResultIgnored, resp.Result)
}

func TestExecute_PendingRecordsPaymentStatus(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	payment := &mercadopago.Payment{
		ID:       123456,
		Status:   mercadopago.PaymentStatusPending,
		Metadata: mercadopago.PreferenceMetadata{AppointmentID: "42"},
	}
	uc := NewUseCase(repo, &fakePaymentClient{payment: payment}, &fakeWhatsAppSender{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	require.NoError(t, err)

	assert.Equal(t, ResultPending, resp.Result)
	assert.Equal(t, domain.PaymentPending, repo.paymentStatus)
}

func TestExecute_UnknownStatusIgnored(t *testing.T) {
	payment := &mercadopago.Payment{
		ID:       123456,
		Status:   "in_mediation",
		Metadata: mercadopago.PreferenceMetadata{AppointmentID: "42"},
	}
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakePaymentClient{payment: payment}, &fakeWhatsAppSender{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, resp.Result)
}

func TestExecute_NonPaymentTypeIgnored(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakePaymentClient{}, &fakeWhatsAppSender{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Type: "merchant_order", PaymentID: "123456"})
	require.NoError(t, err)
	assert.Equal(t, ResultIgnored, resp.Result)
}

func TestExecute_MissingPaymentID(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakePaymentClient{}, &fakeWhatsAppSender{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Type: "payment"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PaymentNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeAppointmentRepo{},
		&fakePaymentClient{err: mercadopago.ErrPaymentNotFound},
		&fakeWhatsAppSender{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "999"})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestExecute_AppointmentNotFoundOnConfirm(t *testing.T) {
	repo := &fakeAppointmentRepo{confirmErr: appointmentRepo.ErrAppointmentNotFound}
	uc := NewUseCase(repo, &fakePaymentClient{payment: approvedPayment()}, &fakeWhatsAppSender{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_BadMetadata(t *testing.T) {
	payment := &mercadopago.Payment{
		ID:       123456,
		Status:   mercadopago.PaymentStatusApproved,
		Metadata: mercadopago.PreferenceMetadata{AppointmentID: "not-a-number"},
	}
	uc := NewUseCase(&fakeAppointmentRepo{}, &fakePaymentClient{payment: payment}, &fakeWhatsAppSender{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Type: "payment", PaymentID: "123456"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
