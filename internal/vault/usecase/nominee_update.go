package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

type NomineeUpdateInput struct {
	ID           int64  `validate:"required"`
	Name         string `validate:"required,max=120"`
	Relation     string `validate:"required,max=60"`
	Mobile       string `validate:"required,mobile"`
	Email        string `validate:"omitempty,email"`
	Aadhaar      string `validate:"omitempty,len=12,numeric"`
	Verified     bool
	SharePercent int16  `validate:"gte=0,lte=100"`
	IDProofKey   string `validate:"max=255"`
}

func (s *Usecase) NomineeUpdate(ctx context.Context, in NomineeUpdateInput) error {
	ctx, span := s.startSpan(ctx, "NomineeUpdate")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	current, err := s.repoDB.GetNomineeByID(ctx, in.ID, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("nominee not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get nominee", "owner", owner, "nominee_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	allocated, err := s.repoDB.SumSharePercent(ctx, owner, in.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo sum nominee shares", "owner", owner, "error", err)
		return goerror.NewServer(err)
	}
	if allocated+in.SharePercent > maxSharePercent {
		return goerror.NewBusiness("nominee shares cannot exceed 100 percent", goerror.CodeInvalidInput)
	}

	aadhaarEnc := current.AadhaarCiphertext
	if in.Aadhaar != "" {
		aadhaarEnc, err = s.encryptAadhaar(owner, in.Aadhaar)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encrypt nominee aadhaar", "owner", owner, "error", err)
			return goerror.NewServer(err)
		}
	}

	err = s.repoDB.UpdateNominee(ctx, entity.Nominee{
		ID:                in.ID,
		OwnerMobile:       owner,
		Name:              in.Name,
		Relation:          in.Relation,
		Mobile:            in.Mobile,
		Email:             in.Email,
		AadhaarCiphertext: aadhaarEnc,
		Verified:          in.Verified,
		SharePercent:      in.SharePercent,
		IDProofKey:        in.IDProofKey,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("nominee not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update nominee", "owner", owner, "nominee_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
