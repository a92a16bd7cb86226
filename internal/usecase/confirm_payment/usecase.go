package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/DPL-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/DPL-BookingService/internal/integrations/mercadopago"
	"github.com/m04kA/DPL-BookingService/internal/integrations/whatsapp"
)

// UseCase use case обработки платёжного webhook
// Подтверждает запись при успешной оплате, удаляет pending-запись
// при неуспешном платеже. Повторная доставка того же уведомления безопасна.
type UseCase struct {
	appointmentRepo AppointmentRepository
	paymentClient   PaymentClient
	whatsappSender  WhatsAppSender
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	paymentClient PaymentClient,
	whatsappSender WhatsAppSender,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		paymentClient:   paymentClient,
		whatsappSender:  whatsappSender,
		logger:          logger,
	}
}

// Execute выполняет обработку платёжного уведомления
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: type=%s, payment=%s", req.Type, req.PaymentID)

	// Провайдер шлёт уведомления нескольких типов, нас интересуют только платежи
	if req.Type != "" && req.Type != "payment" {
		uc.logger.Info("ConfirmPayment: ignoring notification type=%s", req.Type)
		return &Response{Result: ResultIgnored}, nil
	}

	if req.PaymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}

	// 1. Запрашиваем платёж у провайдера
	payment, err := uc.paymentClient.GetPayment(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, mercadopago.ErrPaymentNotFound) {
			uc.logger.Warn("ConfirmPayment: payment id=%s not found", req.PaymentID)
			return nil, ErrPaymentNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get payment id=%s: %v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	// 2. Извлекаем ID записи из метаданных платежа
	appointmentID, err := strconv.ParseInt(payment.Metadata.AppointmentID, 10, 64)
	if err != nil || appointmentID <= 0 {
		uc.logger.Warn("ConfirmPayment: payment id=%s has no valid appointment metadata", req.PaymentID)
		return nil, fmt.Errorf("%w: invalid appointment id in payment metadata", ErrInvalidInput)
	}

	uc.logger.Info("ConfirmPayment: payment id=%s, status=%s, appointment=%d",
		req.PaymentID, payment.Status, appointmentID)

	// 3. Обрабатываем статус платежа
	switch {
	case payment.Status == mercadopago.PaymentStatusApproved:
		return uc.confirm(ctx, appointmentID, req.PaymentID)

	case mercadopago.IsFailedStatus(payment.Status):
		return uc.releaseSlot(ctx, appointmentID, payment.Status)

	case payment.Status == mercadopago.PaymentStatusPending:
		if err := uc.appointmentRepo.SetPaymentStatus(ctx, appointmentID, domain.PaymentPending, req.PaymentID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ConfirmPayment: appointment id=%d not found", appointmentID)
				return nil, ErrAppointmentNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to record pending payment for appointment id=%d: %v",
				appointmentID, err)
			return nil, fmt.Errorf("%w: failed to record payment status: %v", ErrInternal, err)
		}
		return &Response{
			Result:        ResultPending,
			AppointmentID: appointmentID,
			PaymentStatus: payment.Status,
		}, nil

	default:
		uc.logger.Info("ConfirmPayment: unhandled payment status=%s for appointment id=%d",
			payment.Status, appointmentID)
		return &Response{
			Result:        ResultIgnored,
			AppointmentID: appointmentID,
			PaymentStatus: payment.Status,
		}, nil
	}
}

// confirm подтверждает запись и отправляет клиенту WhatsApp-подтверждение
// Подтверждение идемпотентно: повторный webhook для уже confirmed записи
// не является ошибкой
func (uc *UseCase) confirm(ctx context.Context, appointmentID int64, paymentID string) (*Response, error) {
	if err := uc.appointmentRepo.SetConfirmed(ctx, appointmentID, paymentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("ConfirmPayment: appointment id=%d not found or already cancelled", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to confirm appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: failed to confirm appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmPayment: confirmed appointment id=%d", appointmentID)

	// Отправка WhatsApp best-effort: ошибка не откатывает подтверждение
	uc.sendConfirmation(ctx, appointmentID)

	return &Response{
		Result:        ResultConfirmed,
		AppointmentID: appointmentID,
		PaymentStatus: mercadopago.PaymentStatusApproved,
	}, nil
}

// releaseSlot удаляет pending-запись после неуспешного платежа
// Подтверждённую запись опоздавший сигнал об ошибке не трогает
func (uc *UseCase) releaseSlot(ctx context.Context, appointmentID int64, paymentStatus string) (*Response, error) {
	deleted, err := uc.appointmentRepo.DeleteIfPending(ctx, appointmentID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to delete appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
	}

	if !deleted {
		uc.logger.Info("ConfirmPayment: appointment id=%d is not pending, failed payment ignored", appointmentID)
		return &Response{
			Result:        ResultIgnored,
			AppointmentID: appointmentID,
			PaymentStatus: paymentStatus,
		}, nil
	}

	uc.logger.Info("ConfirmPayment: deleted pending appointment id=%d after payment status=%s",
		appointmentID, paymentStatus)
	return &Response{
		Result:        ResultDeleted,
		AppointmentID: appointmentID,
		PaymentStatus: paymentStatus,
	}, nil
}

// sendConfirmation отправляет WhatsApp-подтверждение клиенту
func (uc *UseCase) sendConfirmation(ctx context.Context, appointmentID int64) {
	apt, err := uc.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to load appointment id=%d for notification: %v",
			appointmentID, err)
		return
	}

	if apt.WhatsAppSent {
		return
	}

	message := whatsapp.ConfirmationMessage(apt)
	if err := uc.whatsappSender.Send(ctx, apt.ClientPhone, message); err != nil {
		if errors.Is(err, whatsapp.ErrDisabled) {
			uc.logger.Info("ConfirmPayment: whatsapp disabled, skipping notification for appointment id=%d",
				appointmentID)
			return
		}
		uc.logger.Error("ConfirmPayment: failed to send whatsapp for appointment id=%d: %v",
			appointmentID, err)
		return
	}

	if err := uc.appointmentRepo.MarkWhatsAppSent(ctx, appointmentID, whatsapp.Method); err != nil {
		uc.logger.Error("ConfirmPayment: failed to mark whatsapp sent for appointment id=%d: %v",
			appointmentID, err)
	}
}
