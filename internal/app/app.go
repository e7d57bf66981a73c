package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/virasatlabs/virasat/internal/pkg/clock"
	"github.com/virasatlabs/virasat/internal/pkg/config"
	"github.com/virasatlabs/virasat/internal/pkg/crypting"
	"github.com/virasatlabs/virasat/internal/pkg/goroutine"
	"github.com/virasatlabs/virasat/internal/pkg/hash"
	"github.com/virasatlabs/virasat/internal/pkg/idempotency"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/jwt"
	"github.com/virasatlabs/virasat/internal/pkg/mail"
	"github.com/virasatlabs/virasat/internal/pkg/messaging"
	"github.com/virasatlabs/virasat/internal/pkg/router"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
	"github.com/virasatlabs/virasat/internal/pkg/storage"
	"github.com/virasatlabs/virasat/internal/pkg/uid"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT
	encryptor crypting.Encryptor

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	sms       sms.Sender
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
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
	app.initSMS()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
