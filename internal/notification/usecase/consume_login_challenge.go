package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/firmanbudi/otpgate/internal/notification/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/idempotency"
	"github.com/firmanbudi/otpgate/internal/pkg/mail"
	"github.com/firmanbudi/otpgate/internal/pkg/valueobject"
)

type ConsumeLoginChallengeInput struct {
	EventID   string    `validate:"required"`
	UserID    int64     `validate:"required,gt=0"`
	Email     string    `validate:"required,email"`
	Name      string    `validate:"required"`
	Code      string    `validate:"required,otp"`
	ExpiresAt time.Time `validate:"required"`
}

var challengeEmailHTML = template.Must(template.New("login_challenge").Parse(`
<p>Hi {{.Name}},</p>
<p>Your verification code is <strong>{{.Code}}</strong>.</p>
<p>It expires in {{.Minutes}} minutes. If you did not try to sign in, you can ignore this email.</p>
`))

// ConsumeLoginChallenge sends the verification code email for one challenge
// event. Redelivered events are skipped using the event ID, so a broker retry
// never mails the same code twice.
func (s *Usecase) ConsumeLoginChallenge(ctx context.Context, in ConsumeLoginChallengeInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeLoginChallenge")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	err := s.idempotency.Exec(ctx, "login-challenge:"+in.EventID, func(ctx context.Context) error {
		return s.deliverChallengeEmail(ctx, in)
	})
	if errors.Is(err, idempotency.ErrCompleted) || errors.Is(err, idempotency.ErrInProgress) {
		slog.InfoContext(ctx, "skipping already handled login challenge event", "event_id", in.EventID, "state", err)
		return nil
	}

	return err
}

func (s *Usecase) deliverChallengeEmail(ctx context.Context, in ConsumeLoginChallengeInput) error {
	minutes := int(in.ExpiresAt.Sub(s.clock.Now()).Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}

	var body bytes.Buffer
	if err := challengeEmailHTML.Execute(&body, map[string]any{
		"Name":    in.Name,
		"Code":    in.Code,
		"Minutes": minutes,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to render verification code email", "user_id", in.UserID, "error", err)
		return nil
	}

	logID, err := s.repoDB.CreateDeliveryLog(ctx, entity.CreateDeliveryLog{
		ID:         s.uid.Generate(),
		EventID:    in.EventID,
		UserID:     in.UserID,
		Recipient:  in.Email,
		TriggerKey: entity.TriggerKeyLoginChallenge,
		Status:     entity.DeliveryStatusQueued,
		Details:    valueobject.JSONMap{"expires_at": in.ExpiresAt},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create delivery log", "user_id", in.UserID, "error", err)
		return err
	}

	msg := mail.Message{
		To:       []string{in.Email},
		Subject:  "Your verification code",
		TextBody: fmt.Sprintf("Hi %s, your verification code is %s. It expires in %d minutes.", in.Name, in.Code, minutes),
		HTMLBody: body.String(),
	}

	backoff := retry.WithMaxRetries(s.maxSendAttempts(), retry.NewExponential(time.Second))
	mailErr := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	if mailErr == nil {
		if err := s.repoDB.UpdateDeliveryLogStatus(ctx, entity.UpdateDeliveryLog{
			ID:               logID,
			Status:           entity.DeliveryStatusSent,
			ProviderResponse: valueobject.JSONMap{},
		}); err != nil {
			slog.ErrorContext(ctx, "failed to repo update delivery log status sent", "log_id", logID, "error", err)
		}
		return nil
	}

	nextRetry := s.clock.Now().Add(s.cfg.GetMinute("modules.notification.retry_after"))
	if err := s.repoDB.UpdateDeliveryLogStatus(ctx, entity.UpdateDeliveryLog{
		ID:               logID,
		Status:           entity.DeliveryStatusFailed,
		ProviderResponse: valueobject.JSONMap{"error": mailErr.Error()},
		NextRetryAt:      &nextRetry,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo update delivery log status failed", "log_id", logID, "error", err)
	}

	slog.ErrorContext(ctx, "failed to send verification code email", "log_id", logID, "user_id", in.UserID, "error", mailErr)
	return mailErr
}

func (s *Usecase) maxSendAttempts() uint64 {
	n := s.cfg.GetInt("modules.notification.max_send_attempts")
	if n <= 0 {
		return 3
	}
	return uint64(n)
}
