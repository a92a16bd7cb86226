package cancel_appointment

// CancellationWindowResponse тело ответа при нарушении правила отмены
type CancellationWindowResponse struct {
	Error           string `json:"error"`
	HoursRemaining  int    `json:"hoursRemaining"`
	MinimumRequired int    `json:"minimumRequired"`
}
