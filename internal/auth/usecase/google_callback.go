package usecase

import (
	"context"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
)

type GoogleCallbackInput struct {
	Code  string `validate:"required"`
	Proto string
	Host  string
}

type GoogleCallbackOutput struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	ExpiresIn    int64
}

// GoogleCallback exchanges the authorization code for tokens using the same
// redirect URI the consent URL was built with.
func (s *Usecase) GoogleCallback(ctx context.Context, in GoogleCallbackInput) (*GoogleCallbackOutput, error) {
	ctx, span := s.startSpan(ctx, "GoogleCallback")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	conf, err := s.googleConfig(in.Proto, in.Host)
	if err != nil {
		return nil, err
	}

	tok, err := conf.Exchange(ctx, in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to exchange google authorization code", "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to exchange authorization code")
	}

	idToken, _ := tok.Extra("id_token").(string)

	out := &GoogleCallbackOutput{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		IDToken:      idToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		out.ExpiresIn = int64(tok.Expiry.Sub(s.clock.Now()).Seconds())
	}

	return out, nil
}
