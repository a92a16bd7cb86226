package confirm_payment

// Request модель запроса обработки платёжного webhook
type Request struct {
	Type      string // Тип уведомления (обрабатывается только "payment")
	PaymentID string // ID платежа у провайдера
}

// Result результат обработки webhook
type Result string

const (
	// ResultConfirmed запись подтверждена
	ResultConfirmed Result = "confirmed"
	// ResultDeleted pending-запись удалена из-за неуспешного платежа
	ResultDeleted Result = "deleted"
	// ResultPending платёж в промежуточном статусе, запись не изменена
	ResultPending Result = "pending"
	// ResultIgnored уведомление не относится к платежам или запись уже обработана
	ResultIgnored Result = "ignored"
)

// Response модель ответа обработки webhook
type Response struct {
	Result        Result // Итог обработки
	AppointmentID int64  // ID затронутой записи (0, если уведомление проигнорировано)
	PaymentStatus string // Статус платежа у провайдера
}
