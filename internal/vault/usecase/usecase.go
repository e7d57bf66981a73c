package usecase

import (
	"context"

	"github.com/virasatlabs/virasat/internal/pkg/clock"
	"github.com/virasatlabs/virasat/internal/pkg/config"
	"github.com/virasatlabs/virasat/internal/pkg/crypting"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/jwt"
	"github.com/virasatlabs/virasat/internal/pkg/storage"
	"github.com/virasatlabs/virasat/internal/pkg/uid"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
	"github.com/virasatlabs/virasat/internal/vault/entity"
	"go.opentelemetry.io/otel/trace"
)

// NomineeInvitedEvent is published when a nominee is added to a vault.
type NomineeInvitedEvent struct {
	OwnerMobile   string
	NomineeID     int64
	NomineeName   string
	NomineeMobile string
	NomineeEmail  string
	Relation      string
}

// EmergencyRuleArmedEvent is published when the inactivity threshold tightens.
type EmergencyRuleArmedEvent struct {
	OwnerMobile       string
	OwnerEmail        string
	InactivityDays    int32
	RequireDeathProof bool
}

type repoMessaging interface {
	PublishNomineeInvited(ctx context.Context, msg NomineeInvitedEvent) error
	PublishEmergencyRuleArmed(ctx context.Context, msg EmergencyRuleArmedEvent) error
}

type repoDB interface {
	CreateAsset(ctx context.Context, a entity.Asset) error
	GetAssetByID(ctx context.Context, id int64, ownerMobile string) (*entity.Asset, error)
	ListAssets(ctx context.Context, ownerMobile string) ([]entity.Asset, error)
	UpdateAsset(ctx context.Context, a entity.Asset) error
	DeleteAsset(ctx context.Context, id int64, ownerMobile string) error

	CreateNominee(ctx context.Context, n entity.Nominee) error
	GetNomineeByID(ctx context.Context, id int64, ownerMobile string) (*entity.Nominee, error)
	ListNominees(ctx context.Context, ownerMobile string) ([]entity.Nominee, error)
	SumSharePercent(ctx context.Context, ownerMobile string, excludeID int64) (int16, error)
	UpdateNominee(ctx context.Context, n entity.Nominee) error
	DeleteNominee(ctx context.Context, id int64, ownerMobile string) error

	GetEmergencyRule(ctx context.Context, ownerMobile string) (*entity.EmergencyRule, error)
	UpsertEmergencyRule(ctx context.Context, rule entity.EmergencyRule) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	encryptor     crypting.Encryptor
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	Encryptor     crypting.Encryptor
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		encryptor:     dep.Encryptor,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("vault.usecase").Start(ctx, name)
}

// authenticatedOwner resolves the vault owner from the session claims. Vault
// state is keyed by the verified mobile number.
func (s *Usecase) authenticatedOwner(ctx context.Context) (string, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.Mobile == "" {
		return "", goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm.Mobile, nil
}
