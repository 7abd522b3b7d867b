package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hassaammgl2/employee-management-system/config"
	"github.com/hassaammgl2/employee-management-system/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

func CreateKafkaReader(config *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:          []string{config.KafkaConfig.BrokerAddress},
		Topic:            config.KafkaConfig.BrokerTopic,
		GroupID:          config.KafkaConfig.GroupID,
		MinBytes:         1e3, // 1KB
		MaxBytes:         1e6, // 1MB
		MaxWait:          100 * time.Millisecond,
		ReadLagInterval:  -1,
		StartOffset:      kafka.LastOffset,
		QueueCapacity:    1000,
		ReadBatchTimeout: 10 * time.Millisecond,
	})
}

func CreateKafkaWriter(config *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(config.KafkaConfig.BrokerAddress),
		Topic:                  config.KafkaConfig.BrokerTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	}
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher writes KafkaMessage envelopes through a circuit breaker, retrying
// with linear backoff while the breaker is closed.
type Publisher struct {
	writer     MessageWriter
	cb         *gobreaker.CircuitBreaker[[]byte]
	maxRetries int
	backoff    time.Duration
}

func CreatePublisher(writer MessageWriter, cb *gobreaker.CircuitBreaker[[]byte], maxRetries int, backoff time.Duration) *Publisher {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &Publisher{writer: writer, cb: cb, maxRetries: maxRetries, backoff: backoff}
}

func (p *Publisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) (err error) {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	for i := 0; i < p.maxRetries; i++ {
		_, err = p.cb.Execute(func() ([]byte, error) {
			return nil, p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: jsonMsg})
		})
		if err == nil {
			return nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Int("attempt", i+1).Msg("")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return err
}
