package mercadopago

// PreferenceItem позиция в платёжной преференции
type PreferenceItem struct {
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// PreferenceMetadata метаданные преференции
// AppointmentID возвращается провайдером в webhook и связывает платёж с записью
type PreferenceMetadata struct {
	AppointmentID string `json:"appointmentId"`
}

// backURLs адреса возврата после оплаты
type backURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// preferenceRequest тело запроса создания преференции
type preferenceRequest struct {
	Items      []PreferenceItem   `json:"items"`
	BackURLs   backURLs           `json:"back_urls"`
	AutoReturn string             `json:"auto_return"`
	Metadata   PreferenceMetadata `json:"metadata"`
}

// Preference созданная платёжная преференция
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// Payment платёж, полученный от провайдера
type Payment struct {
	ID       int64              `json:"id"`
	Status   string             `json:"status"`
	Metadata PreferenceMetadata `json:"metadata"`
}

// Статусы платежа провайдера
const (
	PaymentStatusApproved = "approved"
	PaymentStatusPending  = "pending"
)

// FailedPaymentStatuses статусы, при которых pending-запись удаляется
var FailedPaymentStatuses = []string{"cancelled", "rejected", "expired", "refunded"}

// IsFailedStatus возвращает true для статусов, означающих неуспешный платёж
func IsFailedStatus(status string) bool {
	for _, s := range FailedPaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
