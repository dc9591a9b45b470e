package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/firmanbudi/otpgate/internal/notification/usecase"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/messaging"
	"github.com/firmanbudi/otpgate/internal/pkg/uid"
	"github.com/firmanbudi/otpgate/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// LoginChallengeNotification handles one login challenge event. Malformed
// payloads are logged and dropped; redelivering them cannot help.
func (h *MQHandler) LoginChallengeNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "LoginChallengeNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: login challenge notification", "msg_id", msg.ID())

	var payload event.LoginChallengeIssued
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of login challenge notification", "msg_id", msg.ID(), "error", err)
		return nil
	}

	if err := h.uc.ConsumeLoginChallenge(ctx, usecase.ConsumeLoginChallengeInput{
		EventID:   payload.EventID,
		UserID:    payload.UserID,
		Email:     payload.Email,
		Name:      payload.Name,
		Code:      payload.Code,
		ExpiresAt: payload.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume login challenge", "msg_id", msg.ID(), "error", err)
		return err
	}

	return nil
}
