package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/virasatlabs/virasat/internal/pkg/crypting"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

const maxSharePercent = 100

type NomineeCreateInput struct {
	Name         string `validate:"required,max=120"`
	Relation     string `validate:"required,max=60"`
	Mobile       string `validate:"required,mobile"`
	Email        string `validate:"omitempty,email"`
	Aadhaar      string `validate:"omitempty,len=12,numeric"`
	SharePercent int16  `validate:"gte=0,lte=100"`
	IDProofKey   string `validate:"max=255"`
}

type NomineeCreateOutput struct {
	ID int64
}

func (s *Usecase) NomineeCreate(ctx context.Context, in NomineeCreateInput) (*NomineeCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "NomineeCreate")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	allocated, err := s.repoDB.SumSharePercent(ctx, owner, 0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo sum nominee shares", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}
	if allocated+in.SharePercent > maxSharePercent {
		return nil, goerror.NewBusiness("nominee shares cannot exceed 100 percent", goerror.CodeInvalidInput)
	}

	var aadhaarEnc string
	if in.Aadhaar != "" {
		aadhaarEnc, err = s.encryptAadhaar(owner, in.Aadhaar)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encrypt nominee aadhaar", "owner", owner, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	nominee := entity.Nominee{
		ID:                s.uid.Generate(),
		OwnerMobile:       owner,
		Name:              in.Name,
		Relation:          in.Relation,
		Mobile:            in.Mobile,
		Email:             in.Email,
		AadhaarCiphertext: aadhaarEnc,
		SharePercent:      in.SharePercent,
		IDProofKey:        in.IDProofKey,
	}

	if err := s.repoDB.CreateNominee(ctx, nominee); err != nil {
		slog.ErrorContext(ctx, "failed to repo create nominee", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishNomineeInvited(ctx, NomineeInvitedEvent{
		OwnerMobile:   owner,
		NomineeID:     nominee.ID,
		NomineeName:   nominee.Name,
		NomineeMobile: nominee.Mobile,
		NomineeEmail:  nominee.Email,
		Relation:      nominee.Relation,
	}); err != nil {
		// Invitation delivery is best effort; the nominee record is already saved.
		slog.WarnContext(ctx, "failed to publish nominee invited event", "owner", owner, "nominee_id", nominee.ID, "error", err)
	}

	return &NomineeCreateOutput{ID: nominee.ID}, nil
}

func (s *Usecase) encryptAadhaar(owner, aadhaar string) (string, error) {
	return s.encryptor.EncryptString(aadhaar, s.ownerScope(owner))
}

func (s *Usecase) ownerScope(owner string) crypting.Scope {
	// The owner key is a validated 10-digit mobile, so this parse cannot fail
	// for data that passed validation.
	id, _ := strconv.ParseInt(owner, 10, 64)

	return crypting.Scope{OwnerID: id, Purpose: crypting.PurposeNomineeAadhaar}
}
