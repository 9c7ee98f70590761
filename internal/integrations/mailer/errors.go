package mailer

import "errors"

var (
	// ErrNotConfigured возвращается, когда у клиента нет API-ключа
	ErrNotConfigured = errors.New("mailer: sendgrid client not configured")

	// ErrSendFailed возвращается при ошибке доставки
	// Вызывающий код никогда не роняет переход состояния из-за этой ошибки -
	// доставка писем строго best-effort
	ErrSendFailed = errors.New("mailer: send failed")
)
