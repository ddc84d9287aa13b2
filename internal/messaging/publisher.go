package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish delivers one typed event to the broker.
type Publish[T any] func(event *T) error

// PublisherGroup owns a broker connection and hands out typed, topic-bound
// publish functions backed by it.
type PublisherGroup struct {
	publisher message.Publisher
}

func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// PublishFunc returns a Publish function that JSON-encodes events onto topic.
func PublishFunc[T any](group *PublisherGroup, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", topic, err)
		}

		return group.publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
