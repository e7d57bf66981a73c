package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/auth/entity"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Mobile string `validate:"required,mobile"`
	OTP    string `validate:"required,otp"`
}

type VerifyOTPOutput struct {
	Token string
}

// VerifyOTP judges the candidate code against the stored challenge. Expiry is
// checked before the code comparison; approved and expired outcomes evict the
// challenge, a mismatch retains it so the user may retry until the window
// closes. On success a signed session token is issued for the mobile number.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	verdict, err := s.ledger.Claim(ctx, in.Mobile, func(ch entity.Challenge) entity.Verdict {
		if ch.ExpiredAt(s.clock.Now()) {
			return entity.VerdictExpired
		}
		if !s.bcrypt.Verify(ch.CodeHash, in.OTP) {
			return entity.VerdictMismatch
		}
		return entity.VerdictApproved
	})
	if errors.Is(err, entity.ErrNotRequested) {
		return nil, goerror.NewBusiness("No OTP was requested for this number", goerror.CodeRejected)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to claim passcode challenge", "mobile", in.Mobile, "error", err)
		return nil, goerror.NewServer(err)
	}

	switch verdict {
	case entity.VerdictExpired:
		s.expired.Inc()
		return nil, goerror.NewBusiness("OTP expired", goerror.CodeRejected)

	case entity.VerdictMismatch:
		s.mismatched.Inc()
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeRejected)
	}

	s.approved.Inc()

	token, err := s.jwt.Generate(s.uid.Generate(), in.Mobile, "")
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "mobile", in.Mobile, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{Token: token}, nil
}
