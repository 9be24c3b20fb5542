package notifications

import (
	"context"

	"dmaxcricket/pkg/kafka"
	"dmaxcricket/pkg/logger"
)

type kafkaNotifier struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

// NewKafkaNotifier publishes booking events to the notifications topic.
// Downstream consumers deliver the actual emails and messages.
func NewKafkaNotifier(producer *kafka.Producer, source string, log *logger.Logger) Notifier {
	return &kafkaNotifier{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (n *kafkaNotifier) NotifyOperator(ctx context.Context, summary *BookingSummary) error {
	msg := kafka.NewMessage().
		WithKey(summary.ProofRef).
		WithEventType(EventBookingSubmitted).
		WithSource(n.source).
		WithHeader("audience", "operator").
		WithValue(summary).
		Build()

	return n.producer.Publish(ctx, msg)
}

func (n *kafkaNotifier) NotifyCustomer(ctx context.Context, channel string, contact string, summary *BookingSummary) error {
	msg := kafka.NewMessage().
		WithKey(summary.ProofRef).
		WithEventType(EventBookingConfirmed).
		WithSource(n.source).
		WithHeader("audience", "customer").
		WithHeader("channel", channel).
		WithHeader("contact", contact).
		WithValue(summary).
		Build()

	return n.producer.Publish(ctx, msg)
}
