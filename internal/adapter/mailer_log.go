package adapter

import (
	"context"

	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/models"
)

type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer returns a [Mailer] that writes every message to the log. It
// is used in development when no mail API is configured.
func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(ctx context.Context, msg models.MailMessage) error {
	m.logger.Info().
		Str("func", "*logMailer.Send").
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("text", msg.Text).
		Msg("mail API is not configured, message logged")
	return nil
}
