package repository

import (
	"context"

	"CreditPull/internal/domain/models"
	"CreditPull/internal/domain/repository"
	pkgkafka "CreditPull/pkg/kafka"
)

// KafkaSignalPublisher implements SignalPublisher for Kafka. Fetch events
// are keyed by the first requested adapter so a consumer can partition by
// data source.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSignalPublisher creates a Kafka-backed fetch-event publisher.
func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) repository.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) PublishFetchEvent(ctx context.Context, event models.FetchEvent) error {
	var key []byte
	if len(event.Adapters) > 0 {
		key = []byte(event.Adapters[0])
	}
	return p.producer.Publish(ctx, p.topic, key, map[string]interface{}{
		"signal_names": event.SignalNames,
		"adapters":     event.Adapters,
		"duration_ms":  event.Duration.Milliseconds(),
		"fetched_at":   event.FetchedAt,
	})
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
