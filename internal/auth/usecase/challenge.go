package usecase

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
	"github.com/firmanbudi/otpgate/internal/shared/event"
)

// issueChallenge stores a fresh verification code on the user and announces
// it for delivery. Issuing always replaces any previous code, so at most one
// challenge is pending per user.
func (u *UseCase) issueChallenge(ctx context.Context, user *entity.User) error {
	code, err := u.dep.Codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "challenge code generation failed", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	now := u.dep.Clock.Now()
	ch := entity.Challenge{Code: code, ExpiresAt: now.Add(u.dep.CodeTTL)}

	if err := u.dep.Users.SaveChallenge(ctx, user.ID, ch); err != nil {
		slog.ErrorContext(ctx, "challenge store failed", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	ev := event.LoginChallengeIssued{
		EventID:   u.dep.EventID.Generate(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.FullName,
		Code:      code,
		ExpiresAt: ch.ExpiresAt,
		IssuedAt:  now,
	}

	// Delivery problems must never fail the login flow; the code is stored
	// and the user can retry or request a new one.
	if err := u.dep.Publisher.ChallengeIssued(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "challenge publish failed", "user_id", user.ID, "event_id", ev.EventID, "error", err)
	} else {
		slog.InfoContext(ctx, "challenge issued", "user_id", user.ID, "event_id", ev.EventID)
	}

	return nil
}

// consumeChallenge checks code against the user's pending challenge and
// clears it on success, so each code works exactly once.
//
// The code comparison runs before the expiry check: a wrong code on an
// expired challenge reports invalid, not expired.
func (u *UseCase) consumeChallenge(ctx context.Context, user *entity.User, code string) (entity.LoginOutcome, error) {
	ch := user.Challenge
	if ch == nil {
		slog.WarnContext(ctx, "code submitted without pending challenge", "user_id", user.ID)
		return entity.OutcomeInvalidCode, nil
	}

	if subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) != 1 {
		slog.WarnContext(ctx, "wrong verification code", "user_id", user.ID)
		return entity.OutcomeInvalidCode, nil
	}

	if ch.Expired(u.dep.Clock.Now()) {
		slog.WarnContext(ctx, "expired verification code", "user_id", user.ID)
		return entity.OutcomeCodeExpired, nil
	}

	cleared, err := u.dep.Users.ClearChallenge(ctx, user.ID, ch.Code)
	if err != nil {
		slog.ErrorContext(ctx, "challenge clear failed", "user_id", user.ID, "error", err)
		return entity.OutcomeUnknown, goerror.NewServer(err)
	}
	if !cleared {
		// A concurrent attempt consumed or replaced the code first.
		slog.WarnContext(ctx, "verification code already consumed", "user_id", user.ID)
		return entity.OutcomeInvalidCode, nil
	}

	return entity.OutcomeAuthenticated, nil
}
