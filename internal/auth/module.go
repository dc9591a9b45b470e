// Package auth bundles the authentication module: HTTP endpoints, the login
// state machine, and its PostgreSQL and broker adapters.
package auth

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/firmanbudi/otpgate/internal/auth/inbound"
	"github.com/firmanbudi/otpgate/internal/auth/outbound/db"
	"github.com/firmanbudi/otpgate/internal/auth/outbound/mq"
	"github.com/firmanbudi/otpgate/internal/auth/usecase"
	"github.com/firmanbudi/otpgate/internal/pkg/clock"
	"github.com/firmanbudi/otpgate/internal/pkg/hash"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/jwt"
	"github.com/firmanbudi/otpgate/internal/pkg/messaging"
	"github.com/firmanbudi/otpgate/internal/pkg/otp"
	"github.com/firmanbudi/otpgate/internal/pkg/router"
	"github.com/firmanbudi/otpgate/internal/pkg/uid"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	EventID    uid.StringID               `validate:"required"`
	Hash       hash.Hash                  `validate:"required"`
	Codes      otp.Generator              `validate:"required"`
	Clock      clock.Clock                `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
	CodeTTL    time.Duration
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	users := db.NewUserRepository(dep.DBConn, dep.Instrument)
	publisher := mq.NewPublisher(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		Validator: dep.Validator,
		Users:     users,
		Publisher: publisher,
		Hash:      dep.Hash,
		Codes:     dep.Codes,
		JWT:       dep.JWT,
		Clock:     dep.Clock,
		EventID:   dep.EventID,
		Telemetry: dep.Instrument,
		CodeTTL:   dep.CodeTTL,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
