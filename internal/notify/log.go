package notify

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

// LogSender stands in for an unconfigured channel. SMS always fails with
// "not configured"; email succeeds only in dev so local runs exercise the
// whole fan-out.
type LogSender struct {
	dev bool
}

func NewLogSender(dev bool) *LogSender {
	return &LogSender{dev: dev}
}

func (s *LogSender) SendEmail(ctx context.Context, to, subject, html, text string) Result {
	if !s.dev {
		logger.WithContext(ctx).Warn("Email not configured", "to", utils.MaskEmail(to))
		return failed(apperrors.ErrNotConfigured)
	}
	id := uuid.NewString()
	logger.WithContext(ctx).Info("Email logged (dev)", "to", utils.MaskEmail(to), "subject", subject, "id", id)
	return Result{Success: true, ID: id}
}

func (s *LogSender) SendSMS(ctx context.Context, to, body string) Result {
	logger.WithContext(ctx).Warn("SMS not configured - Twilio credentials missing", "to", utils.MaskPhone(to))
	return failed(apperrors.ErrNotConfigured)
}
