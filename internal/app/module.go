package app

import (
	"log/slog"
	"os"

	"github.com/firmanbudi/otpgate/internal/auth"
	"github.com/firmanbudi/otpgate/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Instrument: a.ins,
			EventID:    a.oid,
			Hash:       a.hasher,
			Codes:      a.codes,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
			CodeTTL:    a.config.GetMinute("modules.auth.code_ttl_minutes"),
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			Messaging:   a.messaging,
			Idempotency: a.idemp,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Mail:        a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}
