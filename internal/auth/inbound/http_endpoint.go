package inbound

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/virasatlabs/virasat/internal/auth/usecase"
	"github.com/virasatlabs/virasat/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for passcode and OAuth workflows.
type HTTPEndpoint struct {
	uc         uc
	trustProxy bool
}

// SendOTP issues and dispatches a passcode for the given mobile number.
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SendOTP(r.Context(), usecase.SendOTPInput{
		Mobile: req.Mobile,
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{
		Success: true,
		Message: "OTP sent successfully",
		Mock:    resp.Mock,
	}, nil
}

// VerifyOTP validates a candidate passcode and returns a session token.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Mobile: req.Mobile,
		OTP:    req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		Success: true,
		Message: "OTP verified successfully",
		Token:   resp.Token,
	}, nil
}

// GoogleAuthURL returns the Google consent URL for the popup flow.
func (h *HTTPEndpoint) GoogleAuthURL(r *router.Request) (any, error) {
	proto, host := h.requestOrigin(r.Request)

	resp, err := h.uc.GoogleAuthURL(r.Context(), usecase.GoogleAuthURLInput{
		Proto: proto,
		Host:  host,
	})
	if err != nil {
		return nil, err
	}

	return GoogleAuthURLResponse{URL: resp.URL}, nil
}

var callbackPage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html>
<body>
<script>
  if (window.opener) {
    window.opener.postMessage({ type: 'OAUTH_AUTH_SUCCESS', tokens: {{.Tokens}} }, '*');
  }
  window.close();
</script>
<p>Authentication successful. You can close this window.</p>
</body>
</html>
`))

// GoogleCallback exchanges the authorization code and renders a page that
// hands the tokens to the opener window. It writes HTML directly, so it is
// registered as a raw handler outside the JSON codec.
func (h *HTTPEndpoint) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	proto, host := h.requestOrigin(r)

	resp, err := h.uc.GoogleCallback(r.Context(), usecase.GoogleCallbackInput{
		Code:  r.URL.Query().Get("code"),
		Proto: proto,
		Host:  host,
	})
	if err != nil {
		http.Error(w, "Authentication failed", http.StatusInternalServerError)
		return
	}

	tokens := map[string]any{
		"access_token": resp.AccessToken,
		"token_type":   resp.TokenType,
	}
	if resp.RefreshToken != "" {
		tokens["refresh_token"] = resp.RefreshToken
	}
	if resp.IDToken != "" {
		tokens["id_token"] = resp.IDToken
	}
	if resp.ExpiresIn > 0 {
		tokens["expires_in"] = resp.ExpiresIn
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := callbackPage.Execute(w, map[string]any{"Tokens": tokens}); err != nil {
		slog.ErrorContext(r.Context(), "failed to render oauth callback page", "error", err)
	}
}

func (h *HTTPEndpoint) requestOrigin(r *http.Request) (proto, host string) {
	proto = "http"
	if r.TLS != nil {
		proto = "https"
	}
	host = r.Host

	if h.trustProxy {
		if fp := r.Header.Get("X-Forwarded-Proto"); fp != "" {
			proto = fp
		}
		if fh := r.Header.Get("X-Forwarded-Host"); fh != "" {
			host = fh
		}
	}

	return proto, host
}
