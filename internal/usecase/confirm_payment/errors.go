package confirm_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден у провайдера
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrAppointmentNotFound возвращается, когда запись из метаданных платежа не найдена
	ErrAppointmentNotFound = errors.New("confirm_payment: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
