package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RentalApprover approves a rental after its payment is confirmed. Implemented
// by the rental application service.
type RentalApprover interface {
	ApproveRental(ctx context.Context, rentalID uuid.UUID) error
}

// PaymentEventConsumer listens to payment events and approves paid rentals.
type PaymentEventConsumer struct {
	consumer *Consumer
	approver RentalApprover
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a PaymentEventConsumer.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	approver RentalApprover,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := NewConsumer(brokers, groupID, TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		approver: approver,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PaymentConfirmed:
		return c.handlePaymentConfirmed(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentConfirmed(ctx context.Context, cloudEvent CloudEvent) error {
	var evt PaymentConfirmedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PaymentConfirmedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing payment confirmed event",
		zap.String("rental_id", evt.RentalID.String()),
		zap.String("payment_id", evt.PaymentID.String()),
	)

	if err := c.approver.ApproveRental(ctx, evt.RentalID); err != nil {
		c.logger.Error("failed to approve rental after payment",
			zap.String("rental_id", evt.RentalID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("rental approved after payment",
		zap.String("rental_id", evt.RentalID.String()),
	)
	return nil
}
