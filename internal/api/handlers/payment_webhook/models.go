package payment_webhook

// WebhookRequest тело платёжного уведомления провайдера
type WebhookRequest struct {
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

// WebhookData данные уведомления
type WebhookData struct {
	ID string `json:"id"`
}

// WebhookResponse ответ на платёжное уведомление
type WebhookResponse struct {
	Result        string `json:"result"`
	AppointmentID int64  `json:"appointmentId,omitempty"`
}
