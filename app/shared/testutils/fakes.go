package testutils

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// NoOpLogger returns a logger that discards everything.
func NoOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FakeEventBus is a programmable fake for eventbus.EventBus. Published
// messages are recorded per topic for later inspection.
type FakeEventBus struct {
	mu        sync.Mutex
	published map[string][]*message.Message

	PublishFunc   func(topic string, messages ...*message.Message) error
	SubscribeFunc func(ctx context.Context, topic string) (<-chan *message.Message, error)
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{published: make(map[string][]*message.Message)}
}

func (f *FakeEventBus) Publish(topic string, messages ...*message.Message) error {
	f.mu.Lock()
	f.published[topic] = append(f.published[topic], messages...)
	f.mu.Unlock()
	if f.PublishFunc != nil {
		return f.PublishFunc(topic, messages...)
	}
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if f.SubscribeFunc != nil {
		return f.SubscribeFunc(ctx, topic)
	}
	return nil, nil
}

func (f *FakeEventBus) Subscriber() message.Subscriber {
	return nil
}

func (f *FakeEventBus) Close() error {
	return nil
}

// Published returns the messages published to a topic.
func (f *FakeEventBus) Published(topic string) []*message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*message.Message, len(f.published[topic]))
	copy(out, f.published[topic])
	return out
}
