// Package app wires dependencies and manages the service lifecycle.
package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/firmanbudi/otpgate/internal/pkg/clock"
	"github.com/firmanbudi/otpgate/internal/pkg/config"
	"github.com/firmanbudi/otpgate/internal/pkg/goroutine"
	"github.com/firmanbudi/otpgate/internal/pkg/hash"
	"github.com/firmanbudi/otpgate/internal/pkg/idempotency"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/jwt"
	"github.com/firmanbudi/otpgate/internal/pkg/mail"
	"github.com/firmanbudi/otpgate/internal/pkg/messaging"
	"github.com/firmanbudi/otpgate/internal/pkg/otp"
	"github.com/firmanbudi/otpgate/internal/pkg/router"
	"github.com/firmanbudi/otpgate/internal/pkg/uid"
	"github.com/firmanbudi/otpgate/internal/pkg/validator"
)

// App holds every long-lived dependency of the service.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clock
	hasher    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	oid       uid.StringID
	codes     otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
