package inbound

import (
	"context"
	"net/http"

	"github.com/virasatlabs/virasat/internal/auth/usecase"
	"github.com/virasatlabs/virasat/internal/pkg/router"
)

type uc interface {
	SendOTP(ctx context.Context, in usecase.SendOTPInput) (*usecase.SendOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)

	GoogleAuthURL(ctx context.Context, in usecase.GoogleAuthURLInput) (*usecase.GoogleAuthURLOutput, error)
	GoogleCallback(ctx context.Context, in usecase.GoogleCallbackInput) (*usecase.GoogleCallbackOutput, error)
}

// Options tune how the HTTP layer interprets inbound requests.
type Options struct {
	// TrustProxyHeaders enables reading X-Forwarded-Proto/Host when deriving
	// the OAuth redirect URI. Only safe behind a trusted reverse proxy.
	TrustProxyHeaders bool
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, opts Options) {
	end := &HTTPEndpoint{uc: uc, trustProxy: opts.TrustProxyHeaders}

	r.POST("/api/auth/send-otp", end.SendOTP)
	r.POST("/api/auth/verify-otp", end.VerifyOTP)
	r.GET("/api/auth/google/url", end.GoogleAuthURL)
	r.GETRaw("/auth/google/callback", http.HandlerFunc(end.GoogleCallback))
}
