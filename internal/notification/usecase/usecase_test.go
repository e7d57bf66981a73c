package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/virasatlabs/virasat/internal/pkg/config"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/mail"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeMail struct {
	sent     []mail.Message
	failures int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, msg)

	return nil
}

type sentSMS struct {
	to   string
	body string
}

type fakeSender struct {
	sent []sentSMS
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentSMS{to: to, body: body})

	return nil
}

func (f *fakeSender) Kind() sms.Kind { return sms.KindLog }

const testConfigYAML = `
mail:
  support_email: support@virasat.example
`

func newTestUsecase(t *testing.T, mailClient *fakeMail, sender *fakeSender) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	vld, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	return NewNotification(Dependency{
		RepoMail:   mailClient,
		Sender:     sender,
		Config:     cfg,
		Clock:      fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Validator:  vld,
		Instrument: instrument.NewNoop(),
	})
}

func validInvite() ConsumeNomineeInvitedInput {
	return ConsumeNomineeInvitedInput{
		OwnerMobile:   "9876543210",
		NomineeID:     42,
		NomineeName:   "Asha Sharma",
		NomineeMobile: "9123456780",
		NomineeEmail:  "asha@example.com",
		Relation:      "spouse",
	}
}

func TestConsumeNomineeInvitedSendsEmailAndSMS(t *testing.T) {
	mailClient := &fakeMail{}
	sender := &fakeSender{}
	uc := newTestUsecase(t, mailClient, sender)

	if err := uc.ConsumeNomineeInvited(context.Background(), validInvite()); err != nil {
		t.Fatalf("ConsumeNomineeInvited() error = %v", err)
	}

	if len(mailClient.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailClient.sent))
	}
	msg := mailClient.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "asha@example.com" {
		t.Errorf("email To = %v", msg.To)
	}
	if !strings.Contains(msg.HTMLBody, "Asha Sharma") || !strings.Contains(msg.HTMLBody, "spouse") {
		t.Errorf("email body missing nominee details: %q", msg.HTMLBody)
	}
	if !strings.Contains(msg.HTMLBody, "support@virasat.example") {
		t.Errorf("email body missing support address: %q", msg.HTMLBody)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d sms, want 1", len(sender.sent))
	}
	if sender.sent[0].to != "9123456780" {
		t.Errorf("sms to = %q", sender.sent[0].to)
	}
	if !strings.Contains(sender.sent[0].body, "XXXXXX3210") {
		t.Errorf("sms body should mask the owner mobile: %q", sender.sent[0].body)
	}
	if strings.Contains(sender.sent[0].body, "9876543210") {
		t.Errorf("sms body leaks the full owner mobile: %q", sender.sent[0].body)
	}
}

func TestConsumeNomineeInvitedWithoutEmail(t *testing.T) {
	mailClient := &fakeMail{}
	sender := &fakeSender{}
	uc := newTestUsecase(t, mailClient, sender)

	in := validInvite()
	in.NomineeEmail = ""
	if err := uc.ConsumeNomineeInvited(context.Background(), in); err != nil {
		t.Fatalf("ConsumeNomineeInvited() error = %v", err)
	}

	if len(mailClient.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(mailClient.sent))
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d sms, want 1", len(sender.sent))
	}
}

func TestConsumeNomineeInvitedInvalidPayloadDropped(t *testing.T) {
	mailClient := &fakeMail{}
	sender := &fakeSender{}
	uc := newTestUsecase(t, mailClient, sender)

	in := validInvite()
	in.NomineeMobile = "not-a-number"
	// Malformed events are dropped, not redelivered forever.
	if err := uc.ConsumeNomineeInvited(context.Background(), in); err != nil {
		t.Fatalf("ConsumeNomineeInvited() error = %v, want nil for invalid payload", err)
	}
	if len(mailClient.sent) != 0 || len(sender.sent) != 0 {
		t.Error("invalid payload should not produce deliveries")
	}
}

func TestConsumeNomineeInvitedEmailRetries(t *testing.T) {
	mailClient := &fakeMail{failures: 2}
	sender := &fakeSender{}
	uc := newTestUsecase(t, mailClient, sender)

	if err := uc.ConsumeNomineeInvited(context.Background(), validInvite()); err != nil {
		t.Fatalf("ConsumeNomineeInvited() error = %v, want success after retries", err)
	}
	if len(mailClient.sent) != 1 {
		t.Errorf("sent %d emails, want 1 after retries", len(mailClient.sent))
	}
}

func TestConsumeNomineeInvitedSMSFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	uc := newTestUsecase(t, &fakeMail{}, sender)

	if err := uc.ConsumeNomineeInvited(context.Background(), validInvite()); err == nil {
		t.Fatal("ConsumeNomineeInvited() should surface the sms failure for redelivery")
	}
}

func TestMaskMobile(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "XXXXXX3210"},
		{"1234", "1234"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := maskMobile(tc.in); got != tc.want {
			t.Errorf("maskMobile(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
