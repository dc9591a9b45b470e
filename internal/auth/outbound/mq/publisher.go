// Package mq publishes auth events to the message broker.
package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/messaging"
	"github.com/firmanbudi/otpgate/internal/shared/event"
)

// Publisher emits auth events through the configured broker.
type Publisher struct {
	broker messaging.Publisher
	tracer trace.Tracer
}

// NewPublisher builds the publisher.
func NewPublisher(broker messaging.Publisher, tel instrument.Instrumentation) *Publisher {
	return &Publisher{
		broker: broker,
		tracer: tel.Tracer("auth.outbound.mq"),
	}
}

// ChallengeIssued publishes a login challenge event. The user ID is the
// message key so brokers with partitioning keep per-user ordering; the event
// ID travels as a header for consumer-side dedupe.
func (p *Publisher) ChallengeIssued(ctx context.Context, ev event.LoginChallengeIssued) error {
	ctx, span := p.tracer.Start(ctx, "Publisher.ChallengeIssued")
	defer span.End()

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal login challenge event: %w", err)
	}

	_, err = p.broker.Publish(ctx, event.TopicLoginChallengeIssued, messaging.OutgoingMessage{
		Body: body,
		Key:  []byte(fmt.Sprintf("%d", ev.UserID)),
		Headers: []messaging.Header{
			{Key: "event_id", Value: []byte(ev.EventID)},
			{Key: "cID", Value: []byte(instrument.GetCorrelationID(ctx))},
		},
	})
	if err != nil {
		return fmt.Errorf("publish login challenge event: %w", err)
	}

	return nil
}
