package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
)

// VerifyCodeInput checks a code without completing a login.
type VerifyCodeInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,otp"`
}

// VerifyCodeOutput reports how the verification resolved.
type VerifyCodeOutput struct {
	Outcome entity.LoginOutcome
}

// VerifyCode consumes the pending challenge for the account, sharing the
// login flow's comparison and one-time-use rules. An unknown account reports
// an invalid code rather than revealing whether the email exists.
func (u *UseCase) VerifyCode(ctx context.Context, in VerifyCodeInput) (*VerifyCodeOutput, error) {
	ctx, span := u.startSpan(ctx, "VerifyCode")
	defer span.End()

	if err := u.dep.Validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "verify rejected by validation", "error", err)
		return nil, goerror.NewInvalidInputReason(err, validationReason(err))
	}

	user, err := u.dep.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "verify for unknown account", "email", in.Email)
			return &VerifyCodeOutput{Outcome: entity.OutcomeInvalidCode}, nil
		}
		slog.ErrorContext(ctx, "verify failed to load account", "error", err)
		return nil, goerror.NewServer(err)
	}

	outcome, err := u.consumeChallenge(ctx, user, in.Code)
	if err != nil {
		return nil, err
	}

	if outcome == entity.OutcomeAuthenticated {
		slog.InfoContext(ctx, "code verified", "user_id", user.ID)
	}

	return &VerifyCodeOutput{Outcome: outcome}, nil
}
