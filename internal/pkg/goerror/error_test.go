package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", NewInvalidInput(errors.New("bad")), http.StatusBadRequest},
		{"rejected", NewBusiness("Invalid OTP", CodeRejected), http.StatusBadRequest},
		{"too many requests", NewBusiness("slow down", CodeTooManyRequest), http.StatusTooManyRequests},
		{"unauthorized", NewBusiness("login required", CodeUnauthorized), http.StatusUnauthorized},
		{"not found", NewBusiness("missing", CodeNotFound), http.StatusNotFound},
		{"conflict", NewBusiness("duplicate", CodeConflict), http.StatusConflict},
		{"server", NewServer(errors.New("boom")), http.StatusInternalServerError},
		{"server with message", NewServerMsg(nil, "Failed to send OTP"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var goErr *Error
			if !errors.As(tt.err, &goErr) {
				t.Fatalf("%v is not a structured error", tt.err)
			}
			if got := goErr.StatusCode(); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewBusinessMessage(t *testing.T) {
	err := NewBusiness("No OTP was requested for this number", CodeRejected)

	var goErr *Error
	if !errors.As(err, &goErr) {
		t.Fatal("not a structured error")
	}
	if goErr.Msg() != "No OTP was requested for this number" {
		t.Errorf("msg = %q", goErr.Msg())
	}
	if goErr.Type() != TypeBusiness {
		t.Errorf("type = %v", goErr.Type())
	}
}

func TestNewServerMsgKeepsCause(t *testing.T) {
	cause := errors.New("provider down")
	err := NewServerMsg(cause, "Failed to send OTP")

	if !errors.Is(err, cause) {
		t.Error("underlying cause is not preserved")
	}

	var goErr *Error
	if !errors.As(err, &goErr) {
		t.Fatal("not a structured error")
	}
	if goErr.Msg() != "Failed to send OTP" {
		t.Errorf("msg = %q", goErr.Msg())
	}
}
