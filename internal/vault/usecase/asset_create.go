package usecase

import (
	"context"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

type AssetCreateInput struct {
	Type            string  `validate:"required"`
	InstitutionName string  `validate:"required,max=120"`
	AccountNo       string  `validate:"max=60"`
	Notes           string  `validate:"max=500"`
	ProofKey        string  `validate:"max=255"`
	Value           float64 `validate:"gte=0"`
}

type AssetCreateOutput struct {
	ID int64
}

func (s *Usecase) AssetCreate(ctx context.Context, in AssetCreateInput) (*AssetCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "AssetCreate")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	assetType := entity.AssetTypeFromString(in.Type)
	if assetType.IsUnknown() {
		return nil, goerror.NewInvalidInput(nil, "type", "asset type is not recognized")
	}

	asset := entity.Asset{
		ID:              s.uid.Generate(),
		OwnerMobile:     owner,
		Type:            assetType,
		InstitutionName: in.InstitutionName,
		AccountNo:       in.AccountNo,
		Notes:           in.Notes,
		ProofKey:        in.ProofKey,
		Value:           in.Value,
	}

	if err := s.repoDB.CreateAsset(ctx, asset); err != nil {
		slog.ErrorContext(ctx, "failed to repo create asset", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AssetCreateOutput{ID: asset.ID}, nil
}
