package sms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewTwilioWithoutCredentials(t *testing.T) {
	if _, err := NewTwilio(TwilioConfig{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestNewTwilioPartialCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  TwilioConfig
	}{
		{"sid only", TwilioConfig{AccountSID: "AC123"}},
		{"missing sid", TwilioConfig{AuthToken: "tok", From: "+15550100"}},
		{"missing token", TwilioConfig{AccountSID: "AC123", From: "+15550100"}},
		{"missing from", TwilioConfig{AccountSID: "AC123", AuthToken: "tok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTwilio(tt.cfg)
			if !errors.Is(err, ErrIncompleteCredentials) {
				t.Errorf("error = %v, want ErrIncompleteCredentials", err)
			}
			if errors.Is(err, ErrNotConfigured) {
				t.Errorf("error = %v, must not collapse into ErrNotConfigured", err)
			}
		})
	}
}

func TestUnconfiguredSenderRefusesSend(t *testing.T) {
	_, err := NewTwilio(TwilioConfig{AccountSID: "AC123"})
	sender := NewUnconfigured(err)

	if sender.Kind() == KindLog {
		t.Fatal("unconfigured sender must not report the log kind")
	}
	if err := sender.Send(context.Background(), "9876543210", "code"); !errors.Is(err, ErrIncompleteCredentials) {
		t.Errorf("Send() error = %v, want ErrIncompleteCredentials", err)
	}
}

func TestTwilioSend(t *testing.T) {
	var gotPath, gotTo, gotBody, gotFrom string
	var gotAuthOK bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, ok := r.BasicAuth()
		gotAuthOK = ok && user == "AC123" && pass == "tok"
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		gotFrom = r.PostFormValue("From")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sender, err := NewTwilio(TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "tok",
		From:       "+15550100",
		BaseURL:    srv.URL,
		Client:     srv.Client(),
	})
	if err != nil {
		t.Fatalf("new twilio: %v", err)
	}

	if err := sender.Send(context.Background(), "+919876543210", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC123/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if !gotAuthOK {
		t.Error("basic auth credentials were not forwarded")
	}
	if gotTo != "+919876543210" || gotFrom != "+15550100" || gotBody != "hello" {
		t.Errorf("form = to:%q from:%q body:%q", gotTo, gotFrom, gotBody)
	}
}

func TestTwilioSendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid to"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	sender, err := NewTwilio(TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "tok",
		From:       "+15550100",
		BaseURL:    srv.URL,
		Client:     srv.Client(),
	})
	if err != nil {
		t.Fatalf("new twilio: %v", err)
	}

	if err := sender.Send(context.Background(), "bad", "hello"); !errors.Is(err, ErrDeliveryFailed) {
		t.Errorf("error = %v, want ErrDeliveryFailed", err)
	}
}

func TestTwilioKind(t *testing.T) {
	sender, err := NewTwilio(TwilioConfig{AccountSID: "AC123", AuthToken: "tok", From: "+15550100"})
	if err != nil {
		t.Fatalf("new twilio: %v", err)
	}
	if sender.Kind() != KindTwilio {
		t.Errorf("kind = %v", sender.Kind())
	}
	if NewLog().Kind() != KindLog {
		t.Errorf("log kind = %v", NewLog().Kind())
	}
}
