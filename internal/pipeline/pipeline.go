// Package pipeline fans a composed alert out to every registered user of a
// city and reports what was delivered.
package pipeline

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/composer"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/events"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	"github.com/rajasatyajit/FloodAlert/internal/metrics"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/internal/notify"
	"github.com/rajasatyajit/FloodAlert/internal/store"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

// Run kinds, recorded on every DispatchResult.
const (
	KindCity      = "city"
	KindBroadcast = "broadcast"
	KindDirect    = "direct"
	KindTest      = "test"
)

// Pipeline coordinates composing, sending and recording alerts.
type Pipeline struct {
	users      store.UserStore
	dispatcher notify.Dispatcher
	composer   *composer.Composer
	publisher  events.Publisher
	clock      clockwork.Clock
	cfg        config.PipelineConfig
}

// New creates a pipeline. A nil publisher disables dispatch events and a
// nil clock uses wall time.
func New(users store.UserStore, dispatcher notify.Dispatcher, comp *composer.Composer, publisher events.Publisher, cfg config.PipelineConfig, clock clockwork.Clock) *Pipeline {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	logger.Info("Pipeline initialized",
		"workers", cfg.WorkerCount,
		"send_timeout", cfg.SendTimeout,
	)

	return &Pipeline{
		users:      users,
		dispatcher: dispatcher,
		composer:   comp,
		publisher:  publisher,
		clock:      clock,
		cfg:        cfg,
	}
}

// Composer exposes the composer so handlers can preview messages.
func (p *Pipeline) Composer() *composer.Composer { return p.composer }

func (p *Pipeline) start(kind, city string) *models.DispatchResult {
	return &models.DispatchResult{
		RunID:     uuid.NewString(),
		Kind:      kind,
		City:      city,
		StartedAt: p.clock.Now().UTC(),
	}
}

// finish stamps the result, records metrics and publishes the event.
func (p *Pipeline) finish(ctx context.Context, res *models.DispatchResult) {
	res.FinishedAt = p.clock.Now().UTC()
	metrics.RecordAlertRun(string(res.RiskLevel), outcome(res), res.FinishedAt.Sub(res.StartedAt))

	if err := p.publisher.PublishDispatch(ctx, *res); err != nil {
		logger.WithContext(ctx).Warn("Dispatch event not published", "run_id", res.RunID, "error", err)
	}

	logger.WithContext(ctx).Info("Alert run finished",
		"run_id", res.RunID,
		"kind", res.Kind,
		"city", res.City,
		"risk", res.RiskLevel,
		"users", res.UsersFound,
		"emails", res.EmailsSent,
		"sms", res.SMSSent,
		"errors", len(res.Errors),
	)
}

func outcome(res *models.DispatchResult) string {
	switch {
	case !res.Alerted:
		return "skipped"
	case res.EmailsSent == 0 && res.SMSSent == 0 && len(res.Errors) > 0:
		return "failed"
	case len(res.Errors) > 0:
		return "partial"
	default:
		return "sent"
	}
}

func requireCity(city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", apperrors.ValidationError{Field: "city", Message: "city is required"}
	}
	return city, nil
}

// SendByCity alerts every user registered for city when its risk is moderate
// or high. Low risk and an empty user list both finish without sending.
// Per-user failures are collected in the result; only lookup failures
// return an error.
func (p *Pipeline) SendByCity(ctx context.Context, cityRaw string) (*models.DispatchResult, error) {
	city, err := requireCity(cityRaw)
	if err != nil {
		return nil, err
	}
	res := p.start(KindCity, city)

	preview, err := p.composer.Compose(city, "")
	if err != nil {
		return nil, err
	}
	res.CanonicalCity = preview.CanonicalCity
	res.RiskLevel = preview.RiskLevel

	users, err := p.users.FindByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	res.UsersFound = len(users)

	if len(users) > 0 && preview.Notify {
		res.Alerted = true
		p.fanout(ctx, res, users, func(u models.User) (composer.Alert, error) {
			return p.composer.Compose(city, u.DisplayName())
		})
	}

	p.finish(ctx, res)
	return res, nil
}

// Broadcast sends an operator message at an explicit level to every user of
// city, whatever the city's own risk.
func (p *Pipeline) Broadcast(ctx context.Context, cityRaw, message string, level models.RiskLevel) (*models.DispatchResult, error) {
	city, err := requireCity(cityRaw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.ValidationError{Field: "message", Message: "message is required"}
	}

	alert, err := p.composer.ComposeBroadcast(city, message, level)
	if err != nil {
		return nil, err
	}
	res := p.start(KindBroadcast, city)
	res.CanonicalCity = alert.CanonicalCity
	res.RiskLevel = alert.RiskLevel

	users, err := p.users.FindByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	res.UsersFound = len(users)

	if len(users) > 0 {
		res.Alerted = true
		p.fanout(ctx, res, users, func(models.User) (composer.Alert, error) {
			return alert, nil
		})
	}

	p.finish(ctx, res)
	return res, nil
}

// SendDirect emails the city alert to one address, registered or not. It
// sends at every risk level; low risk gets the status update.
func (p *Pipeline) SendDirect(ctx context.Context, email, cityRaw string) (*models.DispatchResult, error) {
	city, err := requireCity(cityRaw)
	if err != nil {
		return nil, err
	}
	alert, err := p.composer.Compose(city, models.EmailLocalPart(email))
	if err != nil {
		return nil, err
	}
	return p.sendOne(ctx, KindDirect, email, alert), nil
}

// SendTest emails the delivery check message. city defaults to Mumbai.
func (p *Pipeline) SendTest(ctx context.Context, email, city string) (*models.DispatchResult, error) {
	alert, err := p.composer.ComposeTest(city)
	if err != nil {
		return nil, err
	}
	return p.sendOne(ctx, KindTest, email, alert), nil
}

func (p *Pipeline) sendOne(ctx context.Context, kind, email string, alert composer.Alert) *models.DispatchResult {
	res := p.start(kind, alert.City)
	res.CanonicalCity = alert.CanonicalCity
	res.RiskLevel = alert.RiskLevel
	res.Alerted = true

	out := p.sendEmail(ctx, "", email, alert)
	if out == nil {
		res.EmailsSent = 1
		res.UsersNotified = 1
	} else {
		res.Errors = []string{out.Error()}
	}

	p.finish(ctx, res)
	return res
}

// delivery is the outcome for one user.
type delivery struct {
	email bool
	sms   bool
	errs  []error
}

// fanout delivers to users with at most cfg.WorkerCount in flight. It never
// aborts early; every user is attempted.
func (p *Pipeline) fanout(ctx context.Context, res *models.DispatchResult, users []models.User, render func(models.User) (composer.Alert, error)) {
	var (
		mu   sync.Mutex
		errs apperrors.MultiError
	)

	var g errgroup.Group
	g.SetLimit(p.cfg.WorkerCount)
	for _, u := range users {
		g.Go(func() error {
			d := p.deliver(ctx, u, render)

			mu.Lock()
			defer mu.Unlock()
			if d.email {
				res.EmailsSent++
			}
			if d.sms {
				res.SMSSent++
			}
			if d.email || d.sms {
				res.UsersNotified++
			}
			for _, err := range d.errs {
				errs.Add(err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if errs.HasErrors() {
		res.Errors = errs.Strings()
		sort.Strings(res.Errors)
	}
}

// deliver sends email and SMS to one user concurrently and bumps the user's
// alert count when either got through.
func (p *Pipeline) deliver(ctx context.Context, u models.User, render func(models.User) (composer.Alert, error)) delivery {
	var d delivery

	alert, err := render(u)
	if err != nil {
		d.errs = append(d.errs, apperrors.DispatchError{UserID: u.ID, Channel: "compose", Recipient: utils.MaskEmail(u.Email), Err: err})
		return d
	}

	var emailErr, smsErr error
	var wg sync.WaitGroup
	if u.Email != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if emailErr = p.sendEmail(ctx, u.ID, u.Email, alert); emailErr == nil {
				d.email = true
			}
		}()
	}
	if u.Phone != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if smsErr = p.sendSMS(ctx, u, alert); smsErr == nil {
				d.sms = true
			}
		}()
	}
	wg.Wait()

	for _, err := range []error{emailErr, smsErr} {
		if err != nil {
			d.errs = append(d.errs, err)
		}
	}

	if d.email || d.sms {
		if err := p.users.IncrementAlertCount(ctx, u.ID, p.clock.Now().UTC()); err != nil {
			logger.WithContext(ctx).Warn("Could not increment alert count", "user_id", u.ID, "error", err)
		}
	}
	return d
}

func (p *Pipeline) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.SendTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.cfg.SendTimeout)
}

func (p *Pipeline) sendEmail(ctx context.Context, userID, to string, alert composer.Alert) error {
	ctx, cancel := p.bounded(ctx)
	defer cancel()

	r := p.dispatcher.SendEmail(ctx, to, alert.EmailSubject, alert.EmailHTML, alert.SMSText)
	if r.Success {
		return nil
	}
	return apperrors.DispatchError{UserID: userID, Channel: notify.ChannelEmail, Recipient: utils.MaskEmail(to), Err: sendError(ctx, r)}
}

func (p *Pipeline) sendSMS(ctx context.Context, u models.User, alert composer.Alert) error {
	ctx, cancel := p.bounded(ctx)
	defer cancel()

	to := utils.NormalizePhone(u.Phone)
	r := p.dispatcher.SendSMS(ctx, to, alert.SMSText)
	if r.Success {
		return nil
	}
	return apperrors.DispatchError{UserID: u.ID, Channel: notify.ChannelSMS, Recipient: utils.MaskPhone(to), Err: sendError(ctx, r)}
}

type resultError string

func (e resultError) Error() string { return string(e) }

func sendError(ctx context.Context, r notify.Result) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.ErrTimeout
	}
	if r.Error == "" {
		return resultError("unknown error")
	}
	return resultError(r.Error)
}
