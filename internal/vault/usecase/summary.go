package usecase

import (
	"context"
	"log/slog"
	"sort"

	"github.com/samber/lo"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

type SummaryOutput struct {
	Summary entity.Summary
}

// Summary aggregates the vault for the dashboard: total portfolio value,
// per-type breakdown, and the nominee allocation picture.
func (s *Usecase) Summary(ctx context.Context) (*SummaryOutput, error) {
	ctx, span := s.startSpan(ctx, "Summary")
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

	nominees, err := s.repoDB.ListNominees(ctx, owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list nominees", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	grouped := lo.GroupBy(assets, func(a entity.Asset) entity.AssetType {
		return a.Type
	})

	breakdown := lo.MapToSlice(grouped, func(t entity.AssetType, group []entity.Asset) entity.TypeBreakdown {
		return entity.TypeBreakdown{
			Type:  t,
			Count: len(group),
			Value: lo.SumBy(group, func(a entity.Asset) float64 { return a.Value }),
		}
	})
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Type < breakdown[j].Type })

	allocations := lo.Map(nominees, func(n entity.Nominee, _ int) entity.NomineeAllocation {
		return entity.NomineeAllocation{
			NomineeID:    n.ID,
			Name:         n.Name,
			SharePercent: n.SharePercent,
		}
	})

	return &SummaryOutput{Summary: entity.Summary{
		TotalValue:       lo.SumBy(assets, func(a entity.Asset) float64 { return a.Value }),
		AssetCount:       len(assets),
		Breakdown:        breakdown,
		Allocations:      allocations,
		AllocatedPercent: lo.SumBy(nominees, func(n entity.Nominee) int16 { return n.SharePercent }),
	}}, nil
}
