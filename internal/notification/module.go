// Package notification bundles the notification module: the broker consumer
// that turns login challenge events into verification code emails, plus its
// PostgreSQL and SMTP adapters.
package notification

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firmanbudi/otpgate/internal/notification/inbound"
	"github.com/firmanbudi/otpgate/internal/notification/outbound/db"
	"github.com/firmanbudi/otpgate/internal/notification/outbound/email"
	"github.com/firmanbudi/otpgate/internal/notification/usecase"
	"github.com/firmanbudi/otpgate/internal/pkg/clock"
	"github.com/firmanbudi/otpgate/internal/pkg/config"
	"github.com/firmanbudi/otpgate/internal/pkg/goroutine"
	"github.com/firmanbudi/otpgate/internal/pkg/idempotency"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/mail"
	"github.com/firmanbudi/otpgate/internal/pkg/messaging"
	"github.com/firmanbudi/otpgate/internal/pkg/uid"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	DBConn      *pgxpool.Pool
	Messaging   messaging.Messaging
	Idempotency idempotency.Idempotency
	Config      config.Config
	Instrument  instrument.Instrumentation
	UID         uid.NumberID
	UUID        uid.StringID
	Clock       clock.Clock
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Mail        mail.Mail
}

func New(dep Dependency) error {
	dbNotif := db.NewDeliveryLogRepository(dep.DBConn, dep.Instrument)
	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		RepoDB:      dbNotif,
		RepoMail:    repoMail,
		Idempotency: dep.Idempotency,
		Config:      dep.Config,
		UID:         dep.UID,
		Clock:       dep.Clock,
		Validator:   dep.Validator,
		Instrument:  dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
