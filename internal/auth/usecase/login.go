package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
)

// LoginInput is a single authentication attempt. Code is empty on the first
// step and carries the verification code on the second.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	Code     string `validate:"omitempty,otp"`
}

// AuthenticatedUser is the identity snapshot embedded in a successful login.
type AuthenticatedUser struct {
	ID    int64
	Email string
	Name  string
}

// LoginOutput reports how the attempt resolved. AccessToken and User are set
// only when Outcome is OutcomeAuthenticated.
type LoginOutput struct {
	Outcome     entity.LoginOutcome
	AccessToken string
	User        AuthenticatedUser
}

// Login runs the authentication state machine for one attempt.
//
// The gates run in a fixed order: credentials are validated, the account is
// loaded, the password is checked, then the attempt branches on whether a
// code was supplied. Failed gates resolve to outcomes, not errors; errors are
// reserved for infrastructure faults.
func (u *UseCase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := u.startSpan(ctx, "Login")
	defer span.End()

	if err := u.dep.Validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "login rejected by validation", "error", err)
		return nil, goerror.NewInvalidInputReason(err, validationReason(err))
	}

	user, err := u.dep.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "login for unknown account", "email", in.Email)
			return &LoginOutput{Outcome: entity.OutcomeInvalidCredentials}, nil
		}
		slog.ErrorContext(ctx, "login failed to load account", "error", err)
		return nil, goerror.NewServer(err)
	}

	// An account without a password hash fails closed, identical to an
	// unknown account.
	if !user.CanAuthenticate() {
		slog.WarnContext(ctx, "login for account without password", "user_id", user.ID)
		return &LoginOutput{Outcome: entity.OutcomeInvalidCredentials}, nil
	}

	if !u.dep.Hash.Verify(user.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "login with wrong password", "user_id", user.ID)
		return &LoginOutput{Outcome: entity.OutcomeInvalidCredentials}, nil
	}

	if in.Code == "" {
		if err := u.issueChallenge(ctx, user); err != nil {
			return nil, err
		}
		return &LoginOutput{Outcome: entity.OutcomeChallengeRequired}, nil
	}

	outcome, err := u.consumeChallenge(ctx, user, in.Code)
	if err != nil {
		return nil, err
	}
	if outcome != entity.OutcomeAuthenticated {
		return &LoginOutput{Outcome: outcome}, nil
	}

	token, err := u.dep.JWT.Generate(user.ID, user.Email, user.FullName)
	if err != nil {
		slog.ErrorContext(ctx, "login failed to sign token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "login succeeded", "user_id", user.ID)

	return &LoginOutput{
		Outcome:     entity.OutcomeAuthenticated,
		AccessToken: token,
		User: AuthenticatedUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.FullName,
		},
	}, nil
}

// validationReason tags the failure as missing credentials when the identity
// or password fields themselves failed, as opposed to a malformed code.
func validationReason(err error) string {
	var fields validator.FieldErrors
	if !errors.As(err, &fields) {
		return ""
	}
	if _, ok := fields["email"]; ok {
		return entity.ReasonMissingCredentials
	}
	if _, ok := fields["password"]; ok {
		return entity.ReasonMissingCredentials
	}
	return ""
}
