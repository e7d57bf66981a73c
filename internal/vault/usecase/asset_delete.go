package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
)

type AssetDeleteInput struct {
	ID int64 `validate:"required"`
}

func (s *Usecase) AssetDelete(ctx context.Context, in AssetDeleteInput) error {
	ctx, span := s.startSpan(ctx, "AssetDelete")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.DeleteAsset(ctx, in.ID, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("asset not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete asset", "owner", owner, "asset_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
