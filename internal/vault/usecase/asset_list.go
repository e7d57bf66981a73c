package usecase

import (
	"context"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

type AssetListOutput struct {
	Assets []entity.Asset
}

func (s *Usecase) AssetList(ctx context.Context) (*AssetListOutput, error) {
	ctx, span := s.startSpan(ctx, "AssetList")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return nil, err
	}

	assets, err := s.repoDB.ListAssets(ctx, owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list assets", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AssetListOutput{Assets: assets}, nil
}
