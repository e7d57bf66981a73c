package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/virasatlabs/virasat/internal/auth/outbound/ledger"
	"github.com/virasatlabs/virasat/internal/pkg/config"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/hash"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"github.com/virasatlabs/virasat/internal/pkg/jwt"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
	"github.com/virasatlabs/virasat/internal/pkg/uid"
	"github.com/virasatlabs/virasat/internal/pkg/validator"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeNumberID struct{}

func (fakeNumberID) Generate() int64 { return 42 }

type sentMessage struct {
	To   string
	Body string
}

type fakeSender struct {
	mu   sync.Mutex
	kind sms.Kind
	err  error
	sent []sentMessage
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{To: to, Body: body})
	return f.err
}

func (f *fakeSender) Kind() sms.Kind { return f.kind }

func (f *fakeSender) last(t *testing.T) sentMessage {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("no message was sent")
	}
	return f.sent[len(f.sent)-1]
}

var reCode = regexp.MustCompile(`\d{6}`)

const testConfigYAML = `
modules:
  auth:
    otp:
      ttl_minutes: 5
      delivery_timeout_seconds: 5
      resend_cooldown_seconds: 0
      country_code: "+91"
`

func newTestUsecase(t *testing.T, cfgYAML string, kind sms.Kind) (*Usecase, *fakeSender, *fakeClock) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(cfgYAML))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte(strings.Repeat("s", 64)),
		Issuer:     "virasat-test",
		Audiences:  []string{"virasat-web"},
		TTLMinutes: time.Hour,
		Clock:      clk,
		UUID:       uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	sender := &fakeSender{kind: kind}

	uc := New(Dependency{
		Ledger:     ledger.NewMemory(clk),
		Sender:     sender,
		Validator:  v,
		Config:     cfg,
		Bcrypt:     hash.NewBcrypt(4, ""),
		UID:        fakeNumberID{},
		Clock:      clk,
		JWT:        signer,
		Instrument: instrument.NewNoop(),
	})

	return uc, sender, clk
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()
	var goErr *goerror.Error
	if !errors.As(err, &goErr) {
		t.Fatalf("error = %v, want a structured error", err)
	}
	if goErr.Code() != want {
		t.Fatalf("error code = %v (%s), want %v", goErr.Code(), goErr.Msg(), want)
	}
}

func sendAndCapture(t *testing.T, uc *Usecase, sender *fakeSender, mobile string) string {
	t.Helper()
	if _, err := uc.SendOTP(context.Background(), SendOTPInput{Mobile: mobile}); err != nil {
		t.Fatalf("send otp: %v", err)
	}
	code := reCode.FindString(sender.last(t).Body)
	if code == "" {
		t.Fatal("no code found in delivered message")
	}
	return code
}

func TestSendAndVerifyHappyPath(t *testing.T) {
	uc, sender, _ := newTestUsecase(t, testConfigYAML, sms.KindTwilio)
	ctx := context.Background()

	code := sendAndCapture(t, uc, sender, "9876543210")

	if to := sender.last(t).To; to != "+919876543210" {
		t.Errorf("delivered to %q, want country code prefix", to)
	}

	out, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: code})
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if out.Token == "" {
		t.Error("verify succeeded without issuing a token")
	}

	// The challenge is consumed; a replay of the same code is refused.
	_, err = uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: code})
	assertCode(t, err, goerror.CodeRejected)

	stats := uc.Stats()
	if stats.Issued != 1 || stats.Approved != 1 {
		t.Errorf("stats = %+v, want 1 issued and 1 approved", stats)
	}
}

func TestVerifyWithoutRequest(t *testing.T) {
	uc, _, _ := newTestUsecase(t, testConfigYAML, sms.KindTwilio)

	_, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{Mobile: "9876543210", OTP: "123456"})
	assertCode(t, err, goerror.CodeRejected)
}

func TestVerifyAfterExpiryEvicts(t *testing.T) {
	uc, sender, clk := newTestUsecase(t, testConfigYAML, sms.KindTwilio)
	ctx := context.Background()

	code := sendAndCapture(t, uc, sender, "9876543210")

	clk.Advance(6 * time.Minute)

	_, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: code})
	assertCode(t, err, goerror.CodeRejected)
	if got := uc.Stats().Expired; got != 1 {
		t.Errorf("expired counter = %d, want 1", got)
	}

	// Expiry evicted the challenge, so the follow-up is "not requested"
	// rather than "expired" again.
	_, err = uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: code})
	assertCode(t, err, goerror.CodeRejected)
	if got := uc.Stats().Expired; got != 1 {
		t.Errorf("expired counter after eviction = %d, want 1", got)
	}
}

func TestResendReplacesChallenge(t *testing.T) {
	uc, sender, _ := newTestUsecase(t, testConfigYAML, sms.KindTwilio)
	ctx := context.Background()

	first := sendAndCapture(t, uc, sender, "9876543210")
	second := sendAndCapture(t, uc, sender, "9876543210")

	if first != second {
		_, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: first})
		assertCode(t, err, goerror.CodeRejected)
	}

	out, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: second})
	if err != nil {
		t.Fatalf("verify with replacement code: %v", err)
	}
	if out.Token == "" {
		t.Error("no token issued for replacement code")
	}
}

func TestMismatchDoesNotConsume(t *testing.T) {
	uc, sender, _ := newTestUsecase(t, testConfigYAML, sms.KindTwilio)
	ctx := context.Background()

	code := sendAndCapture(t, uc, sender, "9876543210")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: wrong})
	assertCode(t, err, goerror.CodeRejected)
	if got := uc.Stats().Mismatched; got != 1 {
		t.Errorf("mismatched counter = %d, want 1", got)
	}

	if _, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: code}); err != nil {
		t.Fatalf("verify after mismatch: %v", err)
	}
}

func TestSendWithLogSenderReportsMock(t *testing.T) {
	uc, sender, _ := newTestUsecase(t, testConfigYAML, sms.KindLog)
	ctx := context.Background()

	out, err := uc.SendOTP(ctx, SendOTPInput{Mobile: "9876543210"})
	if err != nil {
		t.Fatalf("send otp: %v", err)
	}
	if !out.Mock {
		t.Error("log sender should mark the response as mock")
	}

	// The log sender receives the bare code, which must still verify.
	code := sender.last(t).Body
	if !reCode.MatchString(code) {
		t.Fatalf("logged body %q is not a 6-digit code", code)
	}
	if _, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: code}); err != nil {
		t.Fatalf("verify logged code: %v", err)
	}
}

func TestSendRejectsInvalidMobile(t *testing.T) {
	uc, sender, _ := newTestUsecase(t, testConfigYAML, sms.KindTwilio)

	_, err := uc.SendOTP(context.Background(), SendOTPInput{Mobile: "123"})
	assertCode(t, err, goerror.CodeInvalidInput)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 0 {
		t.Error("invalid mobile must not trigger a delivery")
	}
}

func TestSendDeliveryFailureKeepsChallenge(t *testing.T) {
	uc, sender, _ := newTestUsecase(t, testConfigYAML, sms.KindTwilio)
	sender.err = sms.ErrDeliveryFailed
	ctx := context.Background()

	_, err := uc.SendOTP(ctx, SendOTPInput{Mobile: "9876543210"})
	assertCode(t, err, goerror.CodeInternal)

	// The stored challenge survives the failed delivery attempt.
	code := reCode.FindString(sender.last(t).Body)
	if _, err := uc.VerifyOTP(ctx, VerifyOTPInput{Mobile: "9876543210", OTP: code}); err != nil {
		t.Fatalf("verify after delivery failure: %v", err)
	}
}

func TestSendWithIncompleteProviderAnswersError(t *testing.T) {
	uc, sender, _ := newTestUsecase(t, testConfigYAML, sms.KindUnconfigured)
	sender.err = sms.ErrIncompleteCredentials
	ctx := context.Background()

	// Partial provider credentials must surface as a server error, never as
	// a mock-mode success.
	out, err := uc.SendOTP(ctx, SendOTPInput{Mobile: "9876543210"})
	assertCode(t, err, goerror.CodeInternal)
	if out != nil {
		t.Fatalf("output = %+v, want nil", out)
	}
}

func TestResendCooldown(t *testing.T) {
	cfgYAML := strings.Replace(testConfigYAML, "resend_cooldown_seconds: 0", "resend_cooldown_seconds: 30", 1)
	uc, _, clk := newTestUsecase(t, cfgYAML, sms.KindTwilio)
	ctx := context.Background()

	if _, err := uc.SendOTP(ctx, SendOTPInput{Mobile: "9876543210"}); err != nil {
		t.Fatalf("first send: %v", err)
	}

	_, err := uc.SendOTP(ctx, SendOTPInput{Mobile: "9876543210"})
	assertCode(t, err, goerror.CodeTooManyRequest)

	clk.Advance(31 * time.Second)
	if _, err := uc.SendOTP(ctx, SendOTPInput{Mobile: "9876543210"}); err != nil {
		t.Fatalf("send after cooldown: %v", err)
	}
}
