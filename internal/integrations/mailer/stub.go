package mailer

import "context"

// Stub отправитель-заглушка: пишет письмо в лог вместо отправки
// Используется в окружениях без API-ключа SendGrid
type Stub struct {
	log Logger
}

// NewStub создает новый экземпляр заглушки
func NewStub(log Logger) *Stub {
	return &Stub{log: log}
}

// Send логирует письмо, ничего не отправляя
func (s *Stub) Send(ctx context.Context, subject, body string, recipients []string) error {
	s.log.Info("Mailer(stub): would send %q to %v", subject, recipients)
	return nil
}
