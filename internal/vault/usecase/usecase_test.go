package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/virasatlabs/virasat/internal/pkg/crypting"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/jwt"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

const testOwner = "9876543210"

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeNumberID struct{ next int64 }

func (f *fakeNumberID) Generate() int64 {
	f.next++

	return f.next
}

type fakeRepo struct {
	assets   []entity.Asset
	nominees []entity.Nominee
	rule     *entity.EmergencyRule
	sumShare int16

	createdNominees []entity.Nominee
	upsertedRules   []entity.EmergencyRule

	err error
}

func (f *fakeRepo) CreateAsset(_ context.Context, a entity.Asset) error {
	if f.err != nil {
		return f.err
	}
	f.assets = append(f.assets, a)

	return nil
}

func (f *fakeRepo) GetAssetByID(_ context.Context, id int64, owner string) (*entity.Asset, error) {
	for i := range f.assets {
		if f.assets[i].ID == id && f.assets[i].OwnerMobile == owner {
			return &f.assets[i], nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ListAssets(_ context.Context, _ string) ([]entity.Asset, error) {
	return f.assets, f.err
}

func (f *fakeRepo) UpdateAsset(_ context.Context, _ entity.Asset) error { return f.err }

func (f *fakeRepo) DeleteAsset(_ context.Context, _ int64, _ string) error { return f.err }

func (f *fakeRepo) CreateNominee(_ context.Context, n entity.Nominee) error {
	if f.err != nil {
		return f.err
	}
	f.createdNominees = append(f.createdNominees, n)
	f.nominees = append(f.nominees, n)

	return nil
}

func (f *fakeRepo) GetNomineeByID(_ context.Context, id int64, owner string) (*entity.Nominee, error) {
	for i := range f.nominees {
		if f.nominees[i].ID == id && f.nominees[i].OwnerMobile == owner {
			return &f.nominees[i], nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ListNominees(_ context.Context, _ string) ([]entity.Nominee, error) {
	return f.nominees, f.err
}

func (f *fakeRepo) SumSharePercent(_ context.Context, _ string, _ int64) (int16, error) {
	return f.sumShare, f.err
}

func (f *fakeRepo) UpdateNominee(_ context.Context, _ entity.Nominee) error { return f.err }

func (f *fakeRepo) DeleteNominee(_ context.Context, _ int64, _ string) error { return f.err }

func (f *fakeRepo) GetEmergencyRule(_ context.Context, _ string) (*entity.EmergencyRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.rule == nil {
		return nil, goerror.ErrNotFound
	}

	return f.rule, nil
}

func (f *fakeRepo) UpsertEmergencyRule(_ context.Context, rule entity.EmergencyRule) error {
	if f.err != nil {
		return f.err
	}
	f.upsertedRules = append(f.upsertedRules, rule)
	f.rule = &rule

	return nil
}

type fakeMessaging struct {
	invited []NomineeInvitedEvent
	armed   []EmergencyRuleArmedEvent
	err     error
}

func (f *fakeMessaging) PublishNomineeInvited(_ context.Context, msg NomineeInvitedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.invited = append(f.invited, msg)

	return nil
}

func (f *fakeMessaging) PublishEmergencyRuleArmed(_ context.Context, msg EmergencyRuleArmedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.armed = append(f.armed, msg)

	return nil
}

func testEncryptor() *crypting.AESGCMEncryptor {
	return crypting.NewAESGCMEncryptor(crypting.StaticKeyProvider{
		KeyBytes: bytes.Repeat([]byte{0x5a}, 32),
	})
}

func newTestUsecase(t *testing.T, repo *fakeRepo, mq *fakeMessaging) *Usecase {
	t.Helper()

	vld, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	return New(Dependency{
		RepoDB:        repo,
		RepoMessaging: mq,
		Validator:     vld,
		Encryptor:     testEncryptor(),
		UID:           &fakeNumberID{},
		Clock:         fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Instrument:    instrument.NewNoop(),
	})
}

func ownerContext() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		UserID: 9876543210,
		Mobile: testOwner,
		Email:  "owner@example.com",
	})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var goErr *goerror.Error
	if !errors.As(err, &goErr) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if goErr.Code() != want {
		t.Fatalf("code = %v, want %v (msg %q)", goErr.Code(), want, goErr.Msg())
	}
}

func TestOperationsRequireAuthentication(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{})
	ctx := context.Background()

	if _, err := uc.Summary(ctx); err == nil {
		t.Fatal("Summary() without claims should fail")
	} else {
		assertCode(t, err, goerror.CodeUnauthorized)
	}

	if _, err := uc.NomineeCreate(ctx, NomineeCreateInput{}); err == nil {
		t.Fatal("NomineeCreate() without claims should fail")
	} else {
		assertCode(t, err, goerror.CodeUnauthorized)
	}

	if err := uc.RulePut(ctx, RulePutInput{InactivityDays: 30}); err == nil {
		t.Fatal("RulePut() without claims should fail")
	} else {
		assertCode(t, err, goerror.CodeUnauthorized)
	}
}
