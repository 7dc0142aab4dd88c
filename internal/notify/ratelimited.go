package notify

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/rajasatyajit/FloodAlert/internal/metrics"
)

// RateLimited wraps a Dispatcher with a shared send rate and a per-send
// timeout. Every attempt is counted in metrics.
type RateLimited struct {
	next    Dispatcher
	limiter *rate.Limiter
	timeout time.Duration
}

// NewRateLimited allows perSecond sends with the given burst. A
// non-positive rate disables limiting; a non-positive timeout disables the
// per-send deadline.
func NewRateLimited(next Dispatcher, perSecond float64, burst int, timeout time.Duration) *RateLimited {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(limit, burst), timeout: timeout}
}

func (r *RateLimited) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func record(channel string, res Result) Result {
	status := "sent"
	if !res.Success {
		status = "failed"
	}
	metrics.RecordNotification(channel, status)
	return res
}

func (r *RateLimited) SendEmail(ctx context.Context, to, subject, html, text string) Result {
	ctx, cancel := r.bounded(ctx)
	defer cancel()
	if err := r.limiter.Wait(ctx); err != nil {
		return record(ChannelEmail, failed(err))
	}
	return record(ChannelEmail, r.next.SendEmail(ctx, to, subject, html, text))
}

func (r *RateLimited) SendSMS(ctx context.Context, to, body string) Result {
	ctx, cancel := r.bounded(ctx)
	defer cancel()
	if err := r.limiter.Wait(ctx); err != nil {
		return record(ChannelSMS, failed(err))
	}
	return record(ChannelSMS, r.next.SendSMS(ctx, to, body))
}
