package inbound

import (
	"context"

	"github.com/firmanbudi/otpgate/internal/notification/usecase"
)

type uc interface {
	ConsumeLoginChallenge(ctx context.Context, in usecase.ConsumeLoginChallengeInput) error
}
