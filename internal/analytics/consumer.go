package analytics

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Consumer subscribes to click events and hands them to the recorder.
type Consumer struct {
	subscriber message.Subscriber
	recorder   *Recorder
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer creates a new click event consumer.
func NewConsumer(subscriber message.Subscriber, recorder *Recorder, logger *zap.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		recorder:   recorder,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Start begins consuming click events.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, TopicURLClicked)
	if err != nil {
		return err
	}

	go c.consumeLoop(ctx, msgs)

	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			c.handleClick(ctx, msg)
		}
	}
}

func (c *Consumer) handleClick(ctx context.Context, msg *message.Message) {
	var event URLClickedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error("failed to unmarshal click event",
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	if err := c.recorder.Record(ctx, &event); err != nil {
		// Recorder already logged the failure; nack for redelivery.
		msg.Nack()

		return
	}

	msg.Ack()

	c.logger.Debug("processed click event",
		zap.String("alias", event.Alias),
	)
}

// Shutdown stops the consumer and waits for in-flight messages to complete.
func (c *Consumer) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return c.subscriber.Close()
}
