// Package usecase delivers verification code emails consumed from the broker.
package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/firmanbudi/otpgate/internal/notification/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/clock"
	"github.com/firmanbudi/otpgate/internal/pkg/config"
	"github.com/firmanbudi/otpgate/internal/pkg/idempotency"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/mail"
	"github.com/firmanbudi/otpgate/internal/pkg/uid"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
)

type repoDB interface {
	CreateDeliveryLog(ctx context.Context, data entity.CreateDeliveryLog) (int64, error)
	UpdateDeliveryLogStatus(ctx context.Context, u entity.UpdateDeliveryLog) error
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoDB      repoDB
	repoMail    repoMail
	idempotency idempotency.Idempotency
	cfg         config.Config
	uid         uid.NumberID
	clock       clock.Clock
	validator   validator.Validator
	tracer      trace.Tracer
}

type Dependency struct {
	RepoDB      repoDB
	RepoMail    repoMail
	Idempotency idempotency.Idempotency
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clock
	Validator   validator.Validator
	Instrument  instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:      dep.RepoDB,
		repoMail:    dep.RepoMail,
		idempotency: dep.Idempotency,
		cfg:         dep.Config,
		uid:         dep.UID,
		clock:       dep.Clock,
		validator:   dep.Validator,
		tracer:      dep.Instrument.Tracer("notification.usecase"),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}
