package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки SendGrid-отправителя
type Config struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Client отправитель почтовых уведомлений через SendGrid
type Client struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       Logger
}

// NewClient создает новый экземпляр SendGrid-отправителя
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       log,
	}
}

// Send отправляет письмо каждому из получателей
// Пустые адреса пропускаются. Ошибка отдельного получателя не прерывает
// рассылку остальным
func (c *Client) Send(ctx context.Context, subject, body string, recipients []string) error {
	if c.client == nil {
		return ErrNotConfigured
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	var lastErr error

	for _, recipient := range recipients {
		if recipient == "" {
			continue
		}

		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), body, body)

		response, err := c.client.SendWithContext(ctx, message)
		if err != nil {
			c.log.Warn("Mailer: send to %s failed: %v", recipient, err)
			lastErr = fmt.Errorf("%w: %v", ErrSendFailed, err)
			continue
		}
		if response.StatusCode >= 400 {
			c.log.Warn("Mailer: sendgrid returned status %d for %s", response.StatusCode, recipient)
			lastErr = fmt.Errorf("%w: status %d", ErrSendFailed, response.StatusCode)
			continue
		}

		c.log.Info("Mailer: sent %q to %s", subject, recipient)
	}

	return lastErr
}
