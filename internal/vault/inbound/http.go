package inbound

import (
	"context"

	"github.com/virasatlabs/virasat/internal/pkg/router"
	"github.com/virasatlabs/virasat/internal/vault/usecase"
)

type uc interface {
	AssetCreate(ctx context.Context, in usecase.AssetCreateInput) (*usecase.AssetCreateOutput, error)
	AssetList(ctx context.Context) (*usecase.AssetListOutput, error)
	AssetUpdate(ctx context.Context, in usecase.AssetUpdateInput) error
	AssetDelete(ctx context.Context, in usecase.AssetDeleteInput) error

	NomineeCreate(ctx context.Context, in usecase.NomineeCreateInput) (*usecase.NomineeCreateOutput, error)
	NomineeList(ctx context.Context) (*usecase.NomineeListOutput, error)
	NomineeUpdate(ctx context.Context, in usecase.NomineeUpdateInput) error
	NomineeDelete(ctx context.Context, in usecase.NomineeDeleteInput) error

	RuleGet(ctx context.Context) (*usecase.RuleGetOutput, error)
	RulePut(ctx context.Context, in usecase.RulePutInput) error

	Summary(ctx context.Context) (*usecase.SummaryOutput, error)
	ProofURL(ctx context.Context, in usecase.ProofURLInput) (*usecase.ProofURLOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/vault/assets", end.AssetList)
	r.POST("/api/vault/assets", end.AssetCreate)
	r.PUT("/api/vault/assets/:id", end.AssetUpdate)
	r.DELETE("/api/vault/assets/:id", end.AssetDelete)

	r.GET("/api/vault/nominees", end.NomineeList)
	r.POST("/api/vault/nominees", end.NomineeCreate)
	r.PUT("/api/vault/nominees/:id", end.NomineeUpdate)
	r.DELETE("/api/vault/nominees/:id", end.NomineeDelete)

	r.GET("/api/vault/emergency-rule", end.RuleGet)
	r.PUT("/api/vault/emergency-rule", end.RulePut)

	r.GET("/api/vault/summary", end.Summary)
	r.POST("/api/vault/proof-url", end.ProofURL)
}
