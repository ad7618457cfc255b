package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/expense-tracker/internal/config"
	"github.com/MKhiriev/expense-tracker/internal/logger"
	"github.com/MKhiriev/expense-tracker/internal/utils"
	"github.com/MKhiriev/expense-tracker/models"
)

type httpMailer struct {
	client *utils.HTTPClient
	cfg    config.Mail

	logger *logger.Logger
}

type mailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// NewMailer returns a [Mailer] posting JSON messages to cfg.APIURL with the
// API key as a bearer token. When no API URL is configured the messages are
// written to the log instead.
func NewMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	if cfg.APIURL == "" {
		return NewLogMailer(logger)
	}

	return &httpMailer{
		client: utils.NewHTTPClient("", cfg.Timeout),
		cfg:    cfg,
		logger: logger,
	}
}

func (m *httpMailer) Send(ctx context.Context, msg models.MailMessage) error {
	req := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(mailRequest{
			From:    m.cfg.From,
			To:      msg.To,
			Subject: msg.Subject,
			Text:    msg.Text,
			HTML:    msg.HTML,
		})
	if m.cfg.APIKey != "" {
		req.SetAuthToken(m.cfg.APIKey)
	}

	resp, err := req.Post(m.cfg.APIURL)
	if err != nil {
		m.logger.Err(err).Str("func", "*httpMailer.Send").Msg("mail API request failed")
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if err = mapHTTPError("mail api", resp); err != nil {
		m.logger.Err(err).Str("func", "*httpMailer.Send").Int("status", resp.StatusCode()).Msg("mail API rejected the message")
		return err
	}

	m.logger.Debug().Str("func", "*httpMailer.Send").Str("subject", msg.Subject).Msg("mail sent")
	return nil
}
