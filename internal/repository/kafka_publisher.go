package repository

import (
	"context"

	"FinSight/internal/domain/models"
	"FinSight/internal/domain/repository"
	pkgkafka "FinSight/pkg/kafka"
)

// KafkaPublisher ships articles onto the ingest topic, keyed by source
// so articles from one feed stay ordered.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates a Kafka article publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, a *models.Article) error {
	return p.producer.Publish(ctx, p.topic, []byte(a.Source), a)
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(articles))
	for i, a := range articles {
		msgs[i] = pkgkafka.Message{Key: []byte(a.Source), Value: a}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
