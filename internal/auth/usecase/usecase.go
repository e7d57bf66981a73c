package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/virasatlabs/virasat/internal/auth/entity"
	"github.com/virasatlabs/virasat/internal/pkg/clock"
	"github.com/virasatlabs/virasat/internal/pkg/config"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/hash"
	"github.com/virasatlabs/virasat/internal/pkg/idempotency"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/jwt"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
	"github.com/virasatlabs/virasat/internal/pkg/uid"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultChallengeTTL    = 5 * time.Minute
	defaultDeliveryTimeout = 10 * time.Second
	defaultCountryCode     = "+91"
)

type repoLedger interface {
	Store(ctx context.Context, ch entity.Challenge) error
	Peek(ctx context.Context, mobile string) (*entity.Challenge, error)
	Claim(ctx context.Context, mobile string, judge func(entity.Challenge) entity.Verdict) (entity.Verdict, error)
}

// Stats holds running counters for passcode operations.
type Stats struct {
	Issued     int64
	Approved   int64
	Expired    int64
	Mismatched int64
}

type Usecase struct {
	ledger    repoLedger
	sender    sms.Sender
	validator validator.Validator
	cfg       config.Config
	bcrypt    hash.Hash
	uid       uid.NumberID
	clock     clock.Clocker
	jwt       jwt.JWT
	idemp     idempotency.Idempotency
	ins       instrument.Instrumentation

	issued     atomic.Int64
	approved   atomic.Int64
	expired    atomic.Int64
	mismatched atomic.Int64
}

type Dependency struct {
	Ledger    repoLedger
	Sender    sms.Sender
	Validator validator.Validator
	Config    config.Config
	Bcrypt    hash.Hash
	UID       uid.NumberID
	Clock     clock.Clocker
	JWT       jwt.JWT
	// Idempotency is optional; without it concurrent duplicate sends are
	// only bounded by the ledger's last-write-wins semantics.
	Idempotency idempotency.Idempotency
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		ledger:    dep.Ledger,
		sender:    dep.Sender,
		validator: dep.Validator,
		cfg:       dep.Config,
		bcrypt:    dep.Bcrypt,
		uid:       dep.UID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		idemp:     dep.Idempotency,
		ins:       dep.Instrument,
	}
	s.registerMetrics()

	return s
}

// registerMetrics exposes the passcode counters through the meter so they
// land in the metrics pipeline alongside the request spans.
func (s *Usecase) registerMetrics() {
	meter := s.ins.Meter("auth.usecase")

	observe := func(name, desc string, src *atomic.Int64) {
		_, err := meter.Int64ObservableCounter(name,
			metric.WithDescription(desc),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(src.Load())
				return nil
			}))
		if err != nil {
			slog.Warn("failed to register passcode counter", "name", name, "error", err)
		}
	}

	observe("auth.otp.issued", "Passcode challenges issued.", &s.issued)
	observe("auth.otp.approved", "Passcode verifications approved.", &s.approved)
	observe("auth.otp.expired", "Passcode claims that found an expired challenge.", &s.expired)
	observe("auth.otp.mismatched", "Passcode verifications that mismatched.", &s.mismatched)
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// Stats returns a snapshot of the passcode counters.
func (s *Usecase) Stats() Stats {
	return Stats{
		Issued:     s.issued.Load(),
		Approved:   s.approved.Load(),
		Expired:    s.expired.Load(),
		Mismatched: s.mismatched.Load(),
	}
}

// generateCode returns a uniformly random 6-digit code in 100000-999999.
func (s *Usecase) generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *Usecase) challengeTTL() time.Duration {
	if ttl := s.cfg.GetMinute("modules.auth.otp.ttl_minutes"); ttl > 0 {
		return ttl
	}

	return defaultChallengeTTL
}

func (s *Usecase) deliveryTimeout() time.Duration {
	if t := s.cfg.GetSecond("modules.auth.otp.delivery_timeout_seconds"); t > 0 {
		return t
	}

	return defaultDeliveryTimeout
}

func (s *Usecase) googleConfig(proto, host string) (*oauth2.Config, error) {
	clientID := s.cfg.GetString("modules.auth.google.client_id")
	clientSecret := s.cfg.GetString("modules.auth.google.client_secret")
	if clientID == "" || clientSecret == "" {
		return nil, goerror.NewServerMsg(nil, "Google OAuth is not configured")
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  s.redirectURI(proto, host),
		Scopes:       []string{"openid", "profile", "email"},
	}, nil
}

// redirectURI derives the OAuth redirect URI. A pinned public_base_url wins;
// otherwise the caller-supplied scheme and host are used, which the inbound
// layer only takes from proxy headers when trust_proxy_headers is enabled.
func (s *Usecase) redirectURI(proto, host string) string {
	if base := s.cfg.GetString("modules.auth.google.public_base_url"); base != "" {
		return strings.TrimRight(base, "/") + "/auth/google/callback"
	}

	if proto == "" {
		proto = "http"
	}

	return fmt.Sprintf("%s://%s/auth/google/callback", proto, host)
}
