// Package eventbus wraps a Watermill in-process Pub/Sub so the rest of the
// codebase only deals with topics and messages.
package eventbus

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventBus defines the behavior for publishing and subscribing to menu events.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Subscriber() message.Subscriber
	Close() error
}

type eventBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewEventBus creates an EventBus backed by a Watermill gochannel transport.
func NewEventBus(ctx context.Context, logger *slog.Logger) (EventBus, error) {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)

	return &eventBus{
		pubsub: pubsub,
		logger: logger,
	}, nil
}

func (b *eventBus) Publish(topic string, messages ...*message.Message) error {
	return b.pubsub.Publish(topic, messages...)
}

func (b *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Subscriber exposes the underlying Watermill subscriber for router wiring.
func (b *eventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

func (b *eventBus) Close() error {
	return b.pubsub.Close()
}
