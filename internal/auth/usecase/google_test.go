package usecase

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
)

const googleConfigYAML = testConfigYAML + `
    google:
      client_id: test-client-id
      client_secret: test-client-secret
`

func TestGoogleAuthURL(t *testing.T) {
	uc, _, _ := newTestUsecase(t, googleConfigYAML, sms.KindLog)

	out, err := uc.GoogleAuthURL(context.Background(), GoogleAuthURLInput{
		Proto: "https",
		Host:  "vault.example.com",
	})
	if err != nil {
		t.Fatalf("GoogleAuthURL() error = %v", err)
	}

	u, err := url.Parse(out.URL)
	if err != nil {
		t.Fatalf("consent URL does not parse: %v", err)
	}
	if u.Host != "accounts.google.com" {
		t.Errorf("consent URL host = %q", u.Host)
	}

	q := u.Query()
	if got := q.Get("client_id"); got != "test-client-id" {
		t.Errorf("client_id = %q", got)
	}
	if got := q.Get("redirect_uri"); got != "https://vault.example.com/auth/google/callback" {
		t.Errorf("redirect_uri = %q", got)
	}
	if got := q.Get("scope"); !strings.Contains(got, "openid") || !strings.Contains(got, "email") {
		t.Errorf("scope = %q, want openid and email", got)
	}
	if got := q.Get("prompt"); got != "consent" {
		t.Errorf("prompt = %q, want consent", got)
	}
	if got := q.Get("access_type"); got != "offline" {
		t.Errorf("access_type = %q, want offline", got)
	}
	if _, present := q["state"]; present {
		t.Errorf("consent URL carries a state parameter: %q", out.URL)
	}
}

func TestGoogleAuthURLPinnedBaseURL(t *testing.T) {
	cfgYAML := googleConfigYAML + `
      public_base_url: https://app.virasat.example/
`
	uc, _, _ := newTestUsecase(t, cfgYAML, sms.KindLog)

	out, err := uc.GoogleAuthURL(context.Background(), GoogleAuthURLInput{
		Proto: "http",
		Host:  "attacker.example",
	})
	if err != nil {
		t.Fatalf("GoogleAuthURL() error = %v", err)
	}

	u, _ := url.Parse(out.URL)
	if got := u.Query().Get("redirect_uri"); got != "https://app.virasat.example/auth/google/callback" {
		t.Errorf("redirect_uri = %q, want the pinned base URL to win", got)
	}
}

func TestGoogleAuthURLDefaultsToHTTP(t *testing.T) {
	uc, _, _ := newTestUsecase(t, googleConfigYAML, sms.KindLog)

	out, err := uc.GoogleAuthURL(context.Background(), GoogleAuthURLInput{Host: "localhost:8081"})
	if err != nil {
		t.Fatalf("GoogleAuthURL() error = %v", err)
	}

	u, _ := url.Parse(out.URL)
	if got := u.Query().Get("redirect_uri"); got != "http://localhost:8081/auth/google/callback" {
		t.Errorf("redirect_uri = %q, want http scheme fallback", got)
	}
}

func TestGoogleAuthURLNotConfigured(t *testing.T) {
	uc, _, _ := newTestUsecase(t, testConfigYAML, sms.KindLog)

	_, err := uc.GoogleAuthURL(context.Background(), GoogleAuthURLInput{Host: "localhost"})
	if err == nil {
		t.Fatal("GoogleAuthURL() without credentials should fail")
	}
	assertCode(t, err, goerror.CodeInternal)
}

func TestGoogleCallbackRequiresCode(t *testing.T) {
	uc, _, _ := newTestUsecase(t, googleConfigYAML, sms.KindLog)

	_, err := uc.GoogleCallback(context.Background(), GoogleCallbackInput{Host: "localhost"})
	if err == nil {
		t.Fatal("GoogleCallback() without a code should fail")
	}
	assertCode(t, err, goerror.CodeInvalidInput)
}
