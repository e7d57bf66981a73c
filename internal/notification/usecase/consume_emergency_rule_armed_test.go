package usecase

import (
	"context"
	"strings"
	"testing"
)

func armedEvent() ConsumeEmergencyRuleArmedInput {
	return ConsumeEmergencyRuleArmedInput{
		OwnerMobile:       "9876543210",
		OwnerEmail:        "owner@example.com",
		InactivityDays:    30,
		RequireDeathProof: true,
	}
}

func TestConsumeEmergencyRuleArmed(t *testing.T) {
	mailClient := &fakeMail{}
	uc := newTestUsecase(t, mailClient, &fakeSender{})

	if err := uc.ConsumeEmergencyRuleArmed(context.Background(), armedEvent()); err != nil {
		t.Fatalf("ConsumeEmergencyRuleArmed() error = %v", err)
	}

	if len(mailClient.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailClient.sent))
	}
	msg := mailClient.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "owner@example.com" {
		t.Errorf("email To = %v", msg.To)
	}
	if !strings.Contains(msg.HTMLBody, "30 days") {
		t.Errorf("email body missing inactivity threshold: %q", msg.HTMLBody)
	}
	if !strings.Contains(msg.HTMLBody, "death certificate") {
		t.Errorf("email body missing death proof clause: %q", msg.HTMLBody)
	}
}

func TestConsumeEmergencyRuleArmedWithoutProofClause(t *testing.T) {
	mailClient := &fakeMail{}
	uc := newTestUsecase(t, mailClient, &fakeSender{})

	in := armedEvent()
	in.RequireDeathProof = false
	if err := uc.ConsumeEmergencyRuleArmed(context.Background(), in); err != nil {
		t.Fatalf("ConsumeEmergencyRuleArmed() error = %v", err)
	}

	if strings.Contains(mailClient.sent[0].HTMLBody, "death certificate") {
		t.Errorf("email body should omit the death proof clause: %q", mailClient.sent[0].HTMLBody)
	}
}

func TestConsumeEmergencyRuleArmedWithoutEmail(t *testing.T) {
	mailClient := &fakeMail{}
	uc := newTestUsecase(t, mailClient, &fakeSender{})

	in := armedEvent()
	in.OwnerEmail = ""
	if err := uc.ConsumeEmergencyRuleArmed(context.Background(), in); err != nil {
		t.Fatalf("ConsumeEmergencyRuleArmed() error = %v", err)
	}
	if len(mailClient.sent) != 0 {
		t.Errorf("sent %d emails, want 0 when the owner has no email", len(mailClient.sent))
	}
}
