// Package messaging provides typed publish/consume plumbing over watermill.
package messaging

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends one typed event. Implementations are safe for concurrent
// use by multiple goroutines.
type Publish[T any] func(event *T) error

// NewPublishFunc builds a Publish for a single topic: the event is JSON
// encoded and sent as one watermill message with a fresh UUID.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
	}
}

// PublisherGroup owns the underlying publisher lifecycle so the container
// can shut it down once regardless of how many typed publish functions
// were derived from it.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a watermill publisher.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the wrapped publisher for deriving typed publish funcs.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
