package usecase

import (
	"testing"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

func TestAssetCreate(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUsecase(t, repo, &fakeMessaging{})

	out, err := uc.AssetCreate(ownerContext(), AssetCreateInput{
		Type:            "Mutual Funds",
		InstitutionName: "HDFC AMC",
		AccountNo:       "FOLIO-1001",
		Value:           150000,
	})
	if err != nil {
		t.Fatalf("AssetCreate() error = %v", err)
	}
	if out.ID == 0 {
		t.Error("AssetCreate() returned zero ID")
	}

	if len(repo.assets) != 1 {
		t.Fatalf("stored %d assets, want 1", len(repo.assets))
	}
	saved := repo.assets[0]
	if saved.OwnerMobile != testOwner {
		t.Errorf("OwnerMobile = %q, want %q", saved.OwnerMobile, testOwner)
	}
	if saved.Type != entity.AssetTypeMutualFunds {
		t.Errorf("Type = %v, want mutual funds", saved.Type)
	}
	if saved.Value != 150000 {
		t.Errorf("Value = %v, want 150000", saved.Value)
	}
}

func TestAssetCreateUnknownType(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUsecase(t, repo, &fakeMessaging{})

	_, err := uc.AssetCreate(ownerContext(), AssetCreateInput{
		Type:            "rare_stamps",
		InstitutionName: "Philately Club",
	})
	if err == nil {
		t.Fatal("AssetCreate() with unknown type should fail")
	}
	assertCode(t, err, goerror.CodeInvalidInput)

	if len(repo.assets) != 0 {
		t.Error("asset was stored despite unknown type")
	}
}

func TestAssetCreateRejectsNegativeValue(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{})

	_, err := uc.AssetCreate(ownerContext(), AssetCreateInput{
		Type:            "Bank",
		InstitutionName: "SBI",
		Value:           -1,
	})
	if err == nil {
		t.Fatal("AssetCreate() with negative value should fail")
	}
	assertCode(t, err, goerror.CodeInvalidInput)
}
