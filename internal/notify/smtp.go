package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

// gmailHost is used when only EMAIL_USER/EMAIL_PASS are set.
const gmailHost = "smtp.gmail.com"

type mailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPSender sends HTML email with a plain-text alternative.
type SMTPSender struct {
	client mailClient
	host   string
	from   string
}

// NewSMTPSender dials lazily; construction only validates options.
func NewSMTPSender(cfg config.NotifyConfig) (*SMTPSender, error) {
	host := cfg.SMTPHost
	if host == "" {
		host = gmailHost
	}
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if cfg.SendTimeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.SendTimeout))
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &SMTPSender{client: client, host: host, from: from}, nil
}

func (s *SMTPSender) message(to, subject, html, text string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", s.from, err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, html)
	if text != "" {
		m.AddAlternativeString(mail.TypeTextPlain, text)
	}
	return m, nil
}

func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, html, text string) Result {
	m, err := s.message(to, subject, html, text)
	if err != nil {
		return failed(err)
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		logger.WithContext(ctx).Error("Email error", "to", utils.MaskEmail(to), "error", err)
		return failed(err)
	}
	id := uuid.NewString()
	logger.WithContext(ctx).Info("Email sent", "to", utils.MaskEmail(to), "id", id)
	return Result{Success: true, ID: id}
}
