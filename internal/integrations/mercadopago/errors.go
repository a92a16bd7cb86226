package mercadopago

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден у провайдера
	ErrPaymentNotFound = errors.New("mercadopago client: payment not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mercadopago client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("mercadopago client: invalid response")
)
