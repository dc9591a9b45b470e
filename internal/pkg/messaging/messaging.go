// Package messaging is a broker-agnostic publish/consume API.
//
// Business code depends on the interfaces here; the concrete broker (NSQ,
// NATS, or Kafka) is chosen by configuration at startup and can change
// without touching use cases.
package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned for features the selected broker cannot provide,
// such as delayed delivery.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging publishes to and consumes from a broker.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

// Publisher sends messages to a destination (topic or subject).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer receives messages from a source until the context is canceled.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one received message. With auto-ack enabled, a nil return
// acks the message and an error nacks it; otherwise the handler must respond
// itself.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a broker-agnostic message to publish.
type OutgoingMessage struct {
	// Body is the payload.
	Body []byte
	// Key selects the Kafka partition; ignored by other brokers.
	Key []byte
	// Headers carry metadata alongside the payload.
	Headers []Header
	// Delay defers delivery where the broker supports it.
	Delay time.Duration
}

// Header is one message header entry.
type Header struct {
	// Key is the header name.
	Key string
	// Value is the header value.
	Value []byte
}

// PublishResult reports what the broker accepted.
type PublishResult struct {
	// MessageID is the broker-assigned ID, when available.
	MessageID string
	// Topic is the destination used.
	Topic string
	// Partition is the Kafka partition, when applicable.
	Partition int32
	// Offset is the Kafka offset, when applicable.
	Offset int64
	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a received message.
type Message interface {
	// Body returns the payload.
	Body() []byte
	// Key returns the partition key, when applicable.
	Key() []byte
	// Headers returns the message headers.
	Headers() []Header
	// ID returns the broker message ID.
	ID() string
	// Topic returns the topic name, when applicable.
	Topic() string
	// Subject returns the subject name, when applicable.
	Subject() string
	// Timestamp returns when the broker recorded the message.
	Timestamp() time.Time
	// Ack marks the message as processed.
	Ack(ctx context.Context) error
}

// Nackable requests redelivery of a message.
type Nackable interface {
	Nack(ctx context.Context) error
}

// Extendable pushes out a message's processing deadline.
type Extendable interface {
	Extend(ctx context.Context, d time.Duration) error
}
