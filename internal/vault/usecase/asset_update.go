package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

type AssetUpdateInput struct {
	ID              int64   `validate:"required"`
	Type            string  `validate:"required"`
	InstitutionName string  `validate:"required,max=120"`
	AccountNo       string  `validate:"max=60"`
	Notes           string  `validate:"max=500"`
	ProofKey        string  `validate:"max=255"`
	Value           float64 `validate:"gte=0"`
}

func (s *Usecase) AssetUpdate(ctx context.Context, in AssetUpdateInput) error {
	ctx, span := s.startSpan(ctx, "AssetUpdate")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	assetType := entity.AssetTypeFromString(in.Type)
	if assetType.IsUnknown() {
		return goerror.NewInvalidInput(nil, "type", "asset type is not recognized")
	}

	err = s.repoDB.UpdateAsset(ctx, entity.Asset{
		ID:              in.ID,
		OwnerMobile:     owner,
		Type:            assetType,
		InstitutionName: in.InstitutionName,
		AccountNo:       in.AccountNo,
		Notes:           in.Notes,
		ProofKey:        in.ProofKey,
		Value:           in.Value,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("asset not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update asset", "owner", owner, "asset_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
