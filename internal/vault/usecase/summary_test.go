package usecase

import (
	"testing"

	"github.com/virasatlabs/virasat/internal/vault/entity"
)

func TestSummaryAggregatesPortfolio(t *testing.T) {
	repo := &fakeRepo{
		assets: []entity.Asset{
			{ID: 1, OwnerMobile: testOwner, Type: entity.AssetTypeBank, Value: 250000},
			{ID: 2, OwnerMobile: testOwner, Type: entity.AssetTypeStocks, Value: 120000},
			{ID: 3, OwnerMobile: testOwner, Type: entity.AssetTypeStocks, Value: 80000},
		},
		nominees: []entity.Nominee{
			{ID: 10, OwnerMobile: testOwner, Name: "Asha", SharePercent: 60},
			{ID: 11, OwnerMobile: testOwner, Name: "Ravi", SharePercent: 30},
		},
	}
	uc := newTestUsecase(t, repo, &fakeMessaging{})

	out, err := uc.Summary(ownerContext())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	sum := out.Summary
	if sum.TotalValue != 450000 {
		t.Errorf("TotalValue = %v, want 450000", sum.TotalValue)
	}
	if sum.AssetCount != 3 {
		t.Errorf("AssetCount = %d, want 3", sum.AssetCount)
	}

	if len(sum.Breakdown) != 2 {
		t.Fatalf("Breakdown has %d entries, want 2", len(sum.Breakdown))
	}
	// Sorted ascending by type, so stocks comes before bank.
	if sum.Breakdown[0].Type != entity.AssetTypeStocks || sum.Breakdown[0].Count != 2 || sum.Breakdown[0].Value != 200000 {
		t.Errorf("Breakdown[0] = %+v, want stocks count 2 value 200000", sum.Breakdown[0])
	}
	if sum.Breakdown[1].Type != entity.AssetTypeBank || sum.Breakdown[1].Count != 1 || sum.Breakdown[1].Value != 250000 {
		t.Errorf("Breakdown[1] = %+v, want bank count 1 value 250000", sum.Breakdown[1])
	}

	if len(sum.Allocations) != 2 {
		t.Fatalf("Allocations has %d entries, want 2", len(sum.Allocations))
	}
	if sum.Allocations[0].NomineeID != 10 || sum.Allocations[0].Name != "Asha" || sum.Allocations[0].SharePercent != 60 {
		t.Errorf("Allocations[0] = %+v", sum.Allocations[0])
	}
	if sum.AllocatedPercent != 90 {
		t.Errorf("AllocatedPercent = %d, want 90", sum.AllocatedPercent)
	}
}

func TestSummaryEmptyVault(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{})

	out, err := uc.Summary(ownerContext())
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	sum := out.Summary
	if sum.TotalValue != 0 || sum.AssetCount != 0 || sum.AllocatedPercent != 0 {
		t.Errorf("empty vault summary = %+v, want zeroes", sum)
	}
	if len(sum.Breakdown) != 0 {
		t.Errorf("Breakdown = %+v, want empty", sum.Breakdown)
	}
	if len(sum.Allocations) != 0 {
		t.Errorf("Allocations = %+v, want empty", sum.Allocations)
	}
}
