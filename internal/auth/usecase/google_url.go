package usecase

import (
	"context"

	"golang.org/x/oauth2"
)

type GoogleAuthURLInput struct {
	// Proto and Host locate the server as seen by the browser; they feed the
	// OAuth redirect URI unless public_base_url pins it.
	Proto string
	Host  string
}

type GoogleAuthURLOutput struct {
	URL string
}

// GoogleAuthURL builds the Google consent URL scoped to profile and email.
func (s *Usecase) GoogleAuthURL(ctx context.Context, in GoogleAuthURLInput) (*GoogleAuthURLOutput, error) {
	_, span := s.startSpan(ctx, "GoogleAuthURL")
	defer span.End()

	conf, err := s.googleConfig(in.Proto, in.Host)
	if err != nil {
		return nil, err
	}

	return &GoogleAuthURLOutput{
		URL: conf.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent")),
	}, nil
}
