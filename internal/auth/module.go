package auth

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/virasatlabs/virasat/internal/auth/inbound"
	"github.com/virasatlabs/virasat/internal/auth/outbound/ledger"
	"github.com/virasatlabs/virasat/internal/auth/usecase"
	"github.com/virasatlabs/virasat/internal/pkg/clock"
	"github.com/virasatlabs/virasat/internal/pkg/config"
	"github.com/virasatlabs/virasat/internal/pkg/goroutine"
	"github.com/virasatlabs/virasat/internal/pkg/hash"
	"github.com/virasatlabs/virasat/internal/pkg/idempotency"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/jwt"
	"github.com/virasatlabs/virasat/internal/pkg/router"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
	"github.com/virasatlabs/virasat/internal/pkg/uid"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
)

type Dependency struct {
	// CacheConn and Idempotency are only required when the ledger driver
	// is "redis".
	CacheConn   *redis.Client
	Idempotency idempotency.Idempotency
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Sender      sms.Sender                 `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ucDep := usecase.Dependency{
		Sender:      dep.Sender,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Bcrypt:      dep.Bcrypt,
		UID:         dep.UID,
		Clock:       dep.Clock,
		JWT:         dep.JWT,
		Idempotency: dep.Idempotency,
		Instrument:  dep.Instrument,
	}

	switch dep.Config.GetString("modules.auth.otp.ledger_driver") {
	case "redis":
		ucDep.Ledger = ledger.NewRedis(dep.CacheConn, dep.Clock, dep.Instrument)

	default:
		mem := ledger.NewMemory(dep.Clock)
		if interval := dep.Config.GetSecond("modules.auth.otp.sweep_interval_seconds"); interval > 0 {
			dep.Goroutine.Go(ctx, func(ctx context.Context) error {
				mem.Sweep(ctx, interval)
				return nil
			})
		}
		ucDep.Ledger = mem
	}

	uc := usecase.New(ucDep)

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Options{
		TrustProxyHeaders: dep.Config.GetBool("modules.auth.google.trust_proxy_headers"),
	})

	return nil
}
