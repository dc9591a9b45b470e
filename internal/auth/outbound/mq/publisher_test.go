package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/messaging"
	"github.com/firmanbudi/otpgate/internal/shared/event"
)

type fakeBroker struct {
	err       error
	topic     string
	published []messaging.OutgoingMessage
}

func (f *fakeBroker) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	if f.err != nil {
		return messaging.PublishResult{}, f.err
	}
	f.topic = destination
	f.published = append(f.published, msg)
	return messaging.PublishResult{Topic: destination}, nil
}

func TestChallengeIssuedMessageShape(t *testing.T) {

	// Arrange
	broker := &fakeBroker{}
	pub := NewPublisher(broker, instrument.NewNoop())
	ev := event.LoginChallengeIssued{
		EventID:   "0194c2f3aa8b7f6d9e3b1c2d",
		UserID:    42,
		Email:     "jane@example.com",
		Name:      "Jane Roe",
		Code:      "654321",
		ExpiresAt: time.Date(2026, 3, 14, 9, 40, 0, 0, time.UTC),
	}

	// Act
	err := pub.ChallengeIssued(context.Background(), ev)

	// Assert
	if err != nil {
		t.Fatalf("expected publish to succeed, got %v", err)
	}
	if broker.topic != event.TopicLoginChallengeIssued {
		t.Fatalf("expected topic %q, got %q", event.TopicLoginChallengeIssued, broker.topic)
	}
	if len(broker.published) != 1 {
		t.Fatalf("expected one message, got %d", len(broker.published))
	}
	msg := broker.published[0]
	if string(msg.Key) != "42" {
		t.Fatalf("expected user ID as message key, got %q", msg.Key)
	}
	var eventID string
	for _, h := range msg.Headers {
		if h.Key == "event_id" {
			eventID = string(h.Value)
		}
	}
	if eventID != ev.EventID {
		t.Fatalf("expected event_id header %q, got %q", ev.EventID, eventID)
	}
	var decoded event.LoginChallengeIssued
	if err := json.Unmarshal(msg.Body, &decoded); err != nil {
		t.Fatalf("expected JSON body, got %v", err)
	}
	if decoded.EventID != ev.EventID || decoded.UserID != ev.UserID || decoded.Email != ev.Email || decoded.Code != ev.Code {
		t.Fatalf("expected body to round-trip the event, got %+v", decoded)
	}
	if !decoded.ExpiresAt.Equal(ev.ExpiresAt) {
		t.Fatalf("expected expiry %v, got %v", ev.ExpiresAt, decoded.ExpiresAt)
	}
}

func TestChallengeIssuedBrokerFailure(t *testing.T) {

	// Arrange
	broker := &fakeBroker{err: errors.New("broker down")}
	pub := NewPublisher(broker, instrument.NewNoop())

	// Act
	err := pub.ChallengeIssued(context.Background(), event.LoginChallengeIssued{EventID: "x", UserID: 1})

	// Assert
	if err == nil {
		t.Fatal("expected an error when the broker rejects the publish")
	}
}
