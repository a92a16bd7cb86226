package appointments

import (
	"errors"
	"fmt"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCannotCancel возвращается, когда запись не может быть отменена (не подтверждена)
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrCancellationWindow возвращается при отмене позже допустимого срока
	ErrCancellationWindow = errors.New("cancellation notice period has passed")

	// ErrWhatsAppDisabled возвращается, когда отправка WhatsApp отключена в конфигурации
	ErrWhatsAppDisabled = errors.New("whatsapp notifications are disabled")

	// ErrWhatsAppFailed возвращается при ошибке отправки WhatsApp-сообщения
	ErrWhatsAppFailed = errors.New("failed to send whatsapp message")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// CancellationWindowError детализирует нарушение правила отмены:
// сколько полных часов осталось до начала и сколько требуется.
// Значения отдаются клиенту в теле ответа
type CancellationWindowError struct {
	HoursRemaining  int
	MinimumRequired int
}

func (e *CancellationWindowError) Error() string {
	return fmt.Sprintf("%v: %d hours before start, %d required",
		ErrCancellationWindow, e.HoursRemaining, e.MinimumRequired)
}

// Is сохраняет совместимость с проверками errors.Is(err, ErrCancellationWindow)
func (e *CancellationWindowError) Is(target error) bool {
	return target == ErrCancellationWindow
}
