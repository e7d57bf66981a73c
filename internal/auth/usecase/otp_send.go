package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/virasatlabs/virasat/internal/auth/entity"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/idempotency"
	"github.com/virasatlabs/virasat/internal/pkg/sms"
)

type SendOTPInput struct {
	Mobile string `validate:"required,mobile"`
}

type SendOTPOutput struct {
	// Mock is set when no SMS provider is configured and the code was only
	// logged server-side.
	Mock bool
}

// SendOTP issues a fresh passcode challenge for the mobile number, replacing
// any live challenge, and dispatches it through the SMS collaborator. The
// response never carries the code itself.
func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) (*SendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.checkResendCooldown(ctx, in.Mobile); err != nil {
		return nil, err
	}

	// With the tracker available, concurrent sends for the same number are
	// collapsed into one delivery instead of racing on the ledger.
	if s.idemp != nil {
		key := "auth:send-otp:" + in.Mobile
		state, err := s.idemp.Acquire(ctx, key, s.deliveryTimeout())
		if err != nil {
			slog.ErrorContext(ctx, "failed to acquire send lock", "mobile", in.Mobile, "error", err)
			return nil, goerror.NewServer(err)
		}
		if state == idempotency.StateInProgress {
			return nil, goerror.NewBusiness("Please wait before requesting another OTP", goerror.CodeTooManyRequest)
		}
		defer func() {
			if err := s.idemp.MarkCompleted(ctx, key, time.Second); err != nil {
				slog.WarnContext(ctx, "failed to release send lock", "mobile", in.Mobile, "error", err)
			}
		}()
	}

	code, err := s.generateCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.bcrypt.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash passcode", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	ttl := s.challengeTTL()

	if err := s.ledger.Store(ctx, entity.Challenge{
		Mobile:    in.Mobile,
		CodeHash:  string(codeHash),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store passcode challenge", "mobile", in.Mobile, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.issued.Inc()

	// Delivery is awaited under a bounded timeout; a hung provider call must
	// not hold the HTTP response indefinitely.
	dctx, cancel := context.WithTimeout(ctx, s.deliveryTimeout())
	defer cancel()

	if s.sender.Kind() == sms.KindLog {
		// Development fallback: the code is exposed through the log only.
		if err := s.sender.Send(dctx, in.Mobile, code); err != nil {
			slog.ErrorContext(ctx, "failed to log passcode", "mobile", in.Mobile, "error", err)
			return nil, goerror.NewServer(err)
		}

		return &SendOTPOutput{Mock: true}, nil
	}

	body := fmt.Sprintf("Your Virasat verification code is %s. It expires in %d minutes.", code, int(ttl.Minutes()))
	if err := s.sender.Send(dctx, s.countryCode()+in.Mobile, body); err != nil {
		// The challenge stays stored; the user may retry delivery.
		slog.ErrorContext(ctx, "failed to deliver passcode", "mobile", in.Mobile, "provider", s.sender.Kind(), "error", err)
		return nil, goerror.NewServerMsg(err, "Failed to send OTP")
	}

	return &SendOTPOutput{Mock: false}, nil
}

func (s *Usecase) checkResendCooldown(ctx context.Context, mobile string) error {
	cooldown := s.cfg.GetSecond("modules.auth.otp.resend_cooldown_seconds")
	if cooldown <= 0 {
		return nil
	}

	ch, err := s.ledger.Peek(ctx, mobile)
	if errors.Is(err, entity.ErrNotRequested) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to peek passcode challenge", "mobile", mobile, "error", err)
		return goerror.NewServer(err)
	}

	if s.clock.Now().Sub(ch.IssuedAt) < cooldown {
		return goerror.NewBusiness("Please wait before requesting another OTP", goerror.CodeTooManyRequest)
	}

	return nil
}

func (s *Usecase) countryCode() string {
	if cc := s.cfg.GetString("modules.auth.otp.country_code"); cc != "" {
		return cc
	}

	return defaultCountryCode
}
