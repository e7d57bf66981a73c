package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioBaseURL = "https://api.twilio.com"

// Twilio is a Sender implementation backed by the Twilio Messages API.
type Twilio struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	client     *http.Client
}

// TwilioConfig configures the Twilio implementation.
type TwilioConfig struct {
	// AccountSID is the Twilio account identifier.
	AccountSID string
	// AuthToken is the Twilio API token.
	AuthToken string
	// From is the sending phone number in E.164 format.
	From string
	// BaseURL overrides the API endpoint; empty means the Twilio cloud.
	BaseURL string
	// Client is the HTTP client; nil means a default with a 10s timeout.
	Client *http.Client
}

// NewTwilio constructs a Twilio SMS sender.
//
// It returns ErrNotConfigured when no credential is set, so the caller can
// fall back to a log-only Sender. When only some credentials are set it
// returns ErrIncompleteCredentials instead; that state must not silently
// degrade to mock mode.
func NewTwilio(cfg TwilioConfig) (*Twilio, error) {
	var missing []string
	if cfg.AccountSID == "" {
		missing = append(missing, "account_sid")
	}
	if cfg.AuthToken == "" {
		missing = append(missing, "auth_token")
	}
	if cfg.From == "" {
		missing = append(missing, "from")
	}

	switch len(missing) {
	case 0:
	case 3:
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteCredentials, strings.Join(missing, ", "))
	}

	base := cfg.BaseURL
	if base == "" {
		base = twilioBaseURL
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Twilio{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.From,
		baseURL:    strings.TrimRight(base, "/"),
		client:     client,
	}, nil
}

// Send delivers a text message through the Twilio Messages API.
func (t *Twilio) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}

	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrDeliveryFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}

// Kind reports the provider implementation.
func (t *Twilio) Kind() Kind {
	return KindTwilio
}
