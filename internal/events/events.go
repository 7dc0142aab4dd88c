// Package events publishes a record of every alert run.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

// Publisher receives finished dispatch results. Publishing is best effort:
// callers log the error and carry on.
type Publisher interface {
	PublishDispatch(ctx context.Context, res models.DispatchResult) error
	Close() error
}

// New returns a Kafka publisher when brokers are configured, otherwise a
// no-op.
func New(cfg config.KafkaConfig) Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("KAFKA_BROKERS not set; dispatch events disabled")
		return NopPublisher{}
	}
	logger.Info("Dispatch events enabled", "topic", cfg.Topic, "brokers", len(cfg.Brokers))
	return NewKafkaPublisher(cfg)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishDispatch(ctx context.Context, res models.DispatchResult) error {
	msg, err := dispatchMessage(res)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// dispatchMessage keys by city so runs for one city stay ordered on a
// single partition.
func dispatchMessage(res models.DispatchResult) (kafkago.Message, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize dispatch result: %w", err)
	}
	key := res.CanonicalCity
	if key == "" {
		key = res.RunID
	}
	return kafkago.Message{
		Key:   []byte(utils.HashString(key)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(res.Kind)},
			{Key: "risk_level", Value: []byte(res.RiskLevel)},
			{Key: "finished_at", Value: []byte(res.FinishedAt.Format(time.RFC3339))},
		},
	}, nil
}

// NopPublisher drops everything.
type NopPublisher struct{}

func (NopPublisher) PublishDispatch(context.Context, models.DispatchResult) error { return nil }
func (NopPublisher) Close() error                                                { return nil }
