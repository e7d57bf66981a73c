package usecase

import (
	"testing"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

func TestRuleGetDefaults(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{})

	out, err := uc.RuleGet(ownerContext())
	if err != nil {
		t.Fatalf("RuleGet() error = %v", err)
	}

	rule := out.Rule
	if rule.OwnerMobile != testOwner {
		t.Errorf("OwnerMobile = %q, want %q", rule.OwnerMobile, testOwner)
	}
	if rule.InactivityDays != 90 {
		t.Errorf("InactivityDays = %d, want default 90", rule.InactivityDays)
	}
	if !rule.RequireDeathProof {
		t.Error("RequireDeathProof = false, want default true")
	}
}

func TestRuleGetReturnsSaved(t *testing.T) {
	repo := &fakeRepo{rule: &entity.EmergencyRule{
		OwnerMobile:       testOwner,
		InactivityDays:    45,
		RequireDeathProof: false,
	}}
	uc := newTestUsecase(t, repo, &fakeMessaging{})

	out, err := uc.RuleGet(ownerContext())
	if err != nil {
		t.Fatalf("RuleGet() error = %v", err)
	}
	if out.Rule.InactivityDays != 45 || out.Rule.RequireDeathProof {
		t.Errorf("Rule = %+v, want saved 45/false", out.Rule)
	}
}

func TestRulePutTighteningArmsRule(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMessaging{}
	uc := newTestUsecase(t, repo, mq)

	// First save tightens from the default 90 days.
	if err := uc.RulePut(ownerContext(), RulePutInput{InactivityDays: 30, RequireDeathProof: true}); err != nil {
		t.Fatalf("RulePut() error = %v", err)
	}
	if len(repo.upsertedRules) != 1 {
		t.Fatalf("upserted %d rules, want 1", len(repo.upsertedRules))
	}
	if len(mq.armed) != 1 {
		t.Fatalf("published %d armed events, want 1", len(mq.armed))
	}
	evt := mq.armed[0]
	if evt.OwnerMobile != testOwner || evt.OwnerEmail != "owner@example.com" {
		t.Errorf("armed event identity = %+v", evt)
	}
	if evt.InactivityDays != 30 || !evt.RequireDeathProof {
		t.Errorf("armed event payload = %+v", evt)
	}

	// Relaxing the threshold saves but does not arm.
	if err := uc.RulePut(ownerContext(), RulePutInput{InactivityDays: 60, RequireDeathProof: true}); err != nil {
		t.Fatalf("RulePut() error = %v", err)
	}
	if len(mq.armed) != 1 {
		t.Errorf("published %d armed events after relaxing, want still 1", len(mq.armed))
	}
	if repo.rule.InactivityDays != 60 {
		t.Errorf("InactivityDays = %d, want 60", repo.rule.InactivityDays)
	}

	// Tightening again from 60 arms again.
	if err := uc.RulePut(ownerContext(), RulePutInput{InactivityDays: 15, RequireDeathProof: false}); err != nil {
		t.Fatalf("RulePut() error = %v", err)
	}
	if len(mq.armed) != 2 {
		t.Errorf("published %d armed events after tightening, want 2", len(mq.armed))
	}
}

func TestRulePutRejectsOutOfRangeDays(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{})

	for _, days := range []int32{0, 366} {
		err := uc.RulePut(ownerContext(), RulePutInput{InactivityDays: days})
		if err == nil {
			t.Fatalf("RulePut(%d days) should fail", days)
		}
		assertCode(t, err, goerror.CodeInvalidInput)
	}
}
