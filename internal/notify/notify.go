// Package notify delivers rendered alerts over email and SMS.
package notify

import (
	"context"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Result is the outcome of one send. Senders never return Go errors to the
// caller; failures are reported here.
type Result struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func failed(err error) Result {
	return Result{Error: err.Error()}
}

// Dispatcher sends one message over one channel. Implementations must be
// safe for concurrent use.
type Dispatcher interface {
	SendEmail(ctx context.Context, to, subject, html, text string) Result
	SendSMS(ctx context.Context, to, body string) Result
}

// EmailSender is the email half of a Dispatcher.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html, text string) Result
}

// SMSSender is the SMS half of a Dispatcher.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) Result
}

// Channels joins independent email and SMS senders into one Dispatcher.
type Channels struct {
	Email EmailSender
	SMS   SMSSender
}

func (c Channels) SendEmail(ctx context.Context, to, subject, html, text string) Result {
	return c.Email.SendEmail(ctx, to, subject, html, text)
}

func (c Channels) SendSMS(ctx context.Context, to, body string) Result {
	return c.SMS.SendSMS(ctx, to, body)
}

// New builds the dispatcher described by cfg: SMTP when a host or Gmail
// credentials are set, Twilio when an account SID and token are set, and the
// log sender for whatever is missing. The result is rate limited and bounded
// by cfg.SendTimeout.
func New(cfg config.NotifyConfig, dev bool) (Dispatcher, error) {
	log := NewLogSender(dev)
	ch := Channels{Email: log, SMS: log}

	if cfg.SMTPHost != "" || cfg.SMTPUsername != "" {
		smtp, err := NewSMTPSender(cfg)
		if err != nil {
			return nil, err
		}
		ch.Email = smtp
		logger.Info("Email channel configured", "host", smtp.host)
	} else {
		logger.Warn("Email channel not configured, messages will only be logged")
	}

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		ch.SMS = NewTwilioSender(cfg)
		logger.Info("SMS channel configured", "provider", "twilio")
	} else {
		logger.Warn("SMS not configured - Twilio credentials missing")
	}

	return NewRateLimited(ch, cfg.RateLimit, cfg.RateBurst, cfg.SendTimeout), nil
}
