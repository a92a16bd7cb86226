package whatsapp

import "errors"

var (
	// ErrDisabled возвращается, когда отправка WhatsApp отключена в конфигурации
	ErrDisabled = errors.New("whatsapp client: sending is disabled")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrSendFailed возвращается, когда API отправки вернуло ошибку
	ErrSendFailed = errors.New("whatsapp client: failed to send message")
)
