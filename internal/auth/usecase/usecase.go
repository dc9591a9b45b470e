// Package usecase implements the authentication flows: password login,
// verification code challenges, and standalone code verification.
package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/clock"
	"github.com/firmanbudi/otpgate/internal/pkg/hash"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/jwt"
	"github.com/firmanbudi/otpgate/internal/pkg/otp"
	"github.com/firmanbudi/otpgate/internal/pkg/uid"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
	"github.com/firmanbudi/otpgate/internal/shared/event"
)

// UserStore is the persistence the auth flows need.
type UserStore interface {
	// FindByEmail returns the user with the given email, including any
	// pending challenge, or goerror.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// SaveChallenge stores a verification code and its expiry on the user,
	// replacing any previous challenge.
	SaveChallenge(ctx context.Context, userID int64, ch entity.Challenge) error
	// ClearChallenge removes the challenge only if the stored code still
	// equals code, and reports whether a row was cleared.
	ClearChallenge(ctx context.Context, userID int64, code string) (bool, error)
}

// ChallengePublisher announces issued challenges to the broker.
type ChallengePublisher interface {
	ChallengeIssued(ctx context.Context, ev event.LoginChallengeIssued) error
}

// Dependency wires the use case's collaborators.
type Dependency struct {
	Validator validator.Validator
	Users     UserStore
	Publisher ChallengePublisher
	Hash      hash.Hash
	Codes     otp.Generator
	JWT       jwt.JWT
	Clock     clock.Clock
	EventID   uid.StringID
	Telemetry instrument.Instrumentation

	// CodeTTL is how long an issued verification code stays valid.
	CodeTTL time.Duration
}

// DefaultCodeTTL applies when Dependency.CodeTTL is not set.
const DefaultCodeTTL = 10 * time.Minute

// UseCase executes the authentication flows.
type UseCase struct {
	dep    Dependency
	tracer trace.Tracer
}

// New builds the use case from its dependencies.
func New(dep Dependency) *UseCase {
	if dep.CodeTTL <= 0 {
		dep.CodeTTL = DefaultCodeTTL
	}

	return &UseCase{
		dep:    dep,
		tracer: dep.Telemetry.Tracer("auth.usecase"),
	}
}

func (u *UseCase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return u.tracer.Start(ctx, name)
}
