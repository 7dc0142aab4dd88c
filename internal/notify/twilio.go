package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender sends SMS through the Twilio Messages API.
type TwilioSender struct {
	api  messageCreator
	from string
}

func NewTwilioSender(cfg config.NotifyConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	if cfg.SendTimeout > 0 {
		client.SetTimeout(cfg.SendTimeout)
	}
	return &TwilioSender{api: client.Api, from: cfg.TwilioFromNumber}
}

// SendSMS returns when Twilio answers or ctx is done, whichever is first.
// The Twilio client has no context support, so an abandoned request runs
// until the client timeout.
func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) Result {
	params := &openapi.CreateMessageParams{}
	params.SetTo(utils.NormalizePhone(to))
	params.SetFrom(s.from)
	params.SetBody(body)

	done := make(chan Result, 1)
	go func() {
		resp, err := s.api.CreateMessage(params)
		if err != nil {
			done <- failed(err)
			return
		}
		r := Result{Success: true}
		if resp != nil && resp.Sid != nil {
			r.ID = *resp.Sid
		}
		done <- r
	}()

	select {
	case r := <-done:
		if r.Success {
			logger.WithContext(ctx).Info("SMS sent", "to", utils.MaskPhone(to), "sid", r.ID)
		} else {
			logger.WithContext(ctx).Error("SMS error", "to", utils.MaskPhone(to), "error", r.Error)
		}
		return r
	case <-ctx.Done():
		return failed(fmt.Errorf("sms to %s: %w", utils.MaskPhone(to), ctx.Err()))
	}
}
