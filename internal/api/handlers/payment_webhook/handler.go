package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	confirmPayment "github.com/m04kA/DPL-BookingService/internal/usecase/confirm_payment"
)

const (
	msgMissingPaymentID = "не указан ID платежа"
	msgPaymentNotFound  = "платёж не найден"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Провайдер передаёт тип и ID платежа в теле или в query параметрах
// (type/topic, data.id/id), поддерживаются оба варианта
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body WebhookRequest
	// Тело может отсутствовать, тогда работаем только с query параметрами
	_ = handlers.DecodeJSON(r, &body)

	notificationType := body.Type
	if notificationType == "" {
		notificationType = r.URL.Query().Get("type")
	}
	if notificationType == "" {
		notificationType = r.URL.Query().Get("topic")
	}

	paymentID := body.Data.ID
	if paymentID == "" {
		paymentID = r.URL.Query().Get("data.id")
	}
	if paymentID == "" {
		paymentID = r.URL.Query().Get("id")
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		Type:      notificationType,
		PaymentID: paymentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingPaymentID)

		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/webhook - Payment not found: payment=%s", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, confirmPayment.ErrAppointmentNotFound):
			// Запись уже удалена или никогда не существовала, провайдеру
			// повторная доставка не нужна
			h.logger.Warn("POST /payments/webhook - Appointment not found: payment=%s", paymentID)
			handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Result: "ignored"})

		default:
			h.logger.Error("POST /payments/webhook - Failed to process webhook: payment=%s, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Processed: payment=%s, result=%s, appointment=%d",
		paymentID, result.Result, result.AppointmentID)
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{
		Result:        string(result.Result),
		AppointmentID: result.AppointmentID,
	})
}
