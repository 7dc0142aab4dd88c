package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/wneessen/go-mail"

	"github.com/rajasatyajit/FloodAlert/config"
)

type fakeMailClient struct {
	mu   sync.Mutex
	sent []*mail.Msg
	err  error
}

func (f *fakeMailClient) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func TestSMTPSender_SendEmail(t *testing.T) {
	client := &fakeMailClient{}
	s := &SMTPSender{client: client, host: "smtp.example.com", from: "alerts@example.com"}

	res := s.SendEmail(context.Background(), "priya@example.com", "Flood", "<p>hi</p>", "hi")
	require.True(t, res.Success, res.Error)
	assert.NotEmpty(t, res.ID)
	require.Len(t, client.sent, 1)
	assert.Equal(t, []string{"Flood"}, client.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSMTPSender_Failures(t *testing.T) {
	s := &SMTPSender{client: &fakeMailClient{err: errors.New("550 mailbox unavailable")}, from: "alerts@example.com"}
	res := s.SendEmail(context.Background(), "priya@example.com", "Flood", "<p>hi</p>", "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "550")

	res = s.SendEmail(context.Background(), "not an address", "Flood", "<p>hi</p>", "")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid recipient")
}

func TestNewSMTPSender_DefaultsToGmail(t *testing.T) {
	s, err := NewSMTPSender(config.NotifyConfig{
		SMTPPort:     587,
		SMTPUsername: "alerts@example.com",
		SMTPPassword: "app-password",
		SendTimeout:  time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, gmailHost, s.host)
	assert.Equal(t, "alerts@example.com", s.from)
}

type fakeTwilio struct {
	delay  time.Duration
	err    error
	params *openapi.CreateMessageParams
}

func (f *fakeTwilio) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	time.Sleep(f.delay)
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSender_SendSMS(t *testing.T) {
	api := &fakeTwilio{}
	s := &TwilioSender{api: api, from: "+15550001111"}

	res := s.SendSMS(context.Background(), "98765 43210", "Flood Alert!")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "SM123", res.ID)
	require.NotNil(t, api.params.To)
	assert.Equal(t, "+919876543210", *api.params.To)
	assert.Equal(t, "+15550001111", *api.params.From)
	assert.Equal(t, "Flood Alert!", *api.params.Body)
}

func TestTwilioSender_ErrorAndTimeout(t *testing.T) {
	s := &TwilioSender{api: &fakeTwilio{err: errors.New("21211 invalid To")}}
	res := s.SendSMS(context.Background(), "+919876543210", "x")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "21211")

	s = &TwilioSender{api: &fakeTwilio{delay: 200 * time.Millisecond}}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res = s.SendSMS(ctx, "+919876543210", "x")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, context.DeadlineExceeded.Error())
}

func TestLogSender(t *testing.T) {
	dev := NewLogSender(true)
	assert.True(t, dev.SendEmail(context.Background(), "a@b.c", "s", "h", "t").Success)
	assert.False(t, dev.SendSMS(context.Background(), "+919876543210", "x").Success)

	prod := NewLogSender(false)
	res := prod.SendEmail(context.Background(), "a@b.c", "s", "h", "t")
	assert.False(t, res.Success)
	assert.Equal(t, "not configured", res.Error)
}

type slowDispatcher struct {
	delay time.Duration
}

func (s slowDispatcher) SendEmail(ctx context.Context, to, subject, html, text string) Result {
	select {
	case <-time.After(s.delay):
		return Result{Success: true}
	case <-ctx.Done():
		return failed(ctx.Err())
	}
}

func (s slowDispatcher) SendSMS(ctx context.Context, to, body string) Result {
	return s.SendEmail(ctx, to, "", "", body)
}

func TestRateLimited_TimeoutBoundsEachSend(t *testing.T) {
	r := NewRateLimited(slowDispatcher{delay: time.Second}, 0, 1, 20*time.Millisecond)

	start := time.Now()
	res := r.SendEmail(context.Background(), "a@b.c", "s", "h", "t")
	assert.False(t, res.Success)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	res = r.SendSMS(context.Background(), "+919876543210", "x")
	assert.False(t, res.Success)
}

func TestRateLimited_PassesThrough(t *testing.T) {
	r := NewRateLimited(slowDispatcher{}, 1000, 10, time.Second)
	assert.True(t, r.SendEmail(context.Background(), "a@b.c", "s", "h", "t").Success)
	assert.True(t, r.SendSMS(context.Background(), "+919876543210", "x").Success)
}

func TestNew_FallsBackToLogSender(t *testing.T) {
	d, err := New(config.NotifyConfig{SendTimeout: time.Second, RateLimit: 100, RateBurst: 10}, true)
	require.NoError(t, err)

	assert.True(t, d.SendEmail(context.Background(), "a@b.c", "s", "h", "t").Success)
	res := d.SendSMS(context.Background(), "+919876543210", "x")
	assert.False(t, res.Success)
	assert.Equal(t, "not configured", res.Error)
}
