package inbound

import (
	"net/http"

	"github.com/virasatlabs/virasat/internal/pkg/router"
	"github.com/virasatlabs/virasat/internal/vault/usecase"
)

// HTTPEndpoint exposes HTTP handlers for the vault workflows.
type HTTPEndpoint struct {
	uc uc
}

type noContent struct{}

func (noContent) StatusCode() int { return http.StatusNoContent }

func (h *HTTPEndpoint) AssetCreate(r *router.Request) (any, error) {
	var req AssetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AssetCreate(r.Context(), usecase.AssetCreateInput{
		Type:            req.Type,
		InstitutionName: req.InstitutionName,
		AccountNo:       req.AccountNo,
		Notes:           req.Notes,
		ProofKey:        req.ProofKey,
		Value:           req.Value,
	})
	if err != nil {
		return nil, err
	}

	return AssetCreateResponse{ID: resp.ID}, nil
}

func (h *HTTPEndpoint) AssetList(r *router.Request) (any, error) {
	resp, err := h.uc.AssetList(r.Context())
	if err != nil {
		return nil, err
	}

	out := AssetListResponse{Assets: make([]AssetResponse, 0, len(resp.Assets))}
	for _, a := range resp.Assets {
		out.Assets = append(out.Assets, AssetResponse{
			ID:              a.ID,
			Type:            a.Type.String(),
			InstitutionName: a.InstitutionName,
			AccountNo:       a.AccountNo,
			Notes:           a.Notes,
			ProofKey:        a.ProofKey,
			Value:           a.Value,
			UpdatedAt:       a.UpdatedAt,
		})
	}

	return out, nil
}

func (h *HTTPEndpoint) AssetUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req AssetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.AssetUpdate(r.Context(), usecase.AssetUpdateInput{
		ID:              id,
		Type:            req.Type,
		InstitutionName: req.InstitutionName,
		AccountNo:       req.AccountNo,
		Notes:           req.Notes,
		ProofKey:        req.ProofKey,
		Value:           req.Value,
	}); err != nil {
		return nil, err
	}

	return noContent{}, nil
}

func (h *HTTPEndpoint) AssetDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.AssetDelete(r.Context(), usecase.AssetDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return noContent{}, nil
}

func (h *HTTPEndpoint) NomineeCreate(r *router.Request) (any, error) {
	var req NomineeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.NomineeCreate(r.Context(), usecase.NomineeCreateInput{
		Name:         req.Name,
		Relation:     req.Relation,
		Mobile:       req.Mobile,
		Email:        req.Email,
		Aadhaar:      req.Aadhaar,
		SharePercent: req.SharePercent,
		IDProofKey:   req.IDProofKey,
	})
	if err != nil {
		return nil, err
	}

	return NomineeCreateResponse{ID: resp.ID}, nil
}

func (h *HTTPEndpoint) NomineeList(r *router.Request) (any, error) {
	resp, err := h.uc.NomineeList(r.Context())
	if err != nil {
		return nil, err
	}

	out := NomineeListResponse{Nominees: make([]NomineeResponse, 0, len(resp.Nominees))}
	for _, item := range resp.Nominees {
		n := item.Nominee
		out.Nominees = append(out.Nominees, NomineeResponse{
			ID:            n.ID,
			Name:          n.Name,
			Relation:      n.Relation,
			Mobile:        n.Mobile,
			Email:         n.Email,
			AadhaarMasked: item.AadhaarMasked,
			Verified:      n.Verified,
			SharePercent:  n.SharePercent,
			IDProofKey:    n.IDProofKey,
			UpdatedAt:     n.UpdatedAt,
		})
	}

	return out, nil
}

func (h *HTTPEndpoint) NomineeUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req NomineeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.NomineeUpdate(r.Context(), usecase.NomineeUpdateInput{
		ID:           id,
		Name:         req.Name,
		Relation:     req.Relation,
		Mobile:       req.Mobile,
		Email:        req.Email,
		Aadhaar:      req.Aadhaar,
		Verified:     req.Verified,
		SharePercent: req.SharePercent,
		IDProofKey:   req.IDProofKey,
	}); err != nil {
		return nil, err
	}

	return noContent{}, nil
}

func (h *HTTPEndpoint) NomineeDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.NomineeDelete(r.Context(), usecase.NomineeDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return noContent{}, nil
}

func (h *HTTPEndpoint) RuleGet(r *router.Request) (any, error) {
	resp, err := h.uc.RuleGet(r.Context())
	if err != nil {
		return nil, err
	}

	return EmergencyRuleResponse{
		InactivityDays:    resp.Rule.InactivityDays,
		RequireDeathProof: resp.Rule.RequireDeathProof,
	}, nil
}

func (h *HTTPEndpoint) RulePut(r *router.Request) (any, error) {
	var req EmergencyRuleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RulePut(r.Context(), usecase.RulePutInput{
		InactivityDays:    req.InactivityDays,
		RequireDeathProof: req.RequireDeathProof,
	}); err != nil {
		return nil, err
	}

	return noContent{}, nil
}

func (h *HTTPEndpoint) Summary(r *router.Request) (any, error) {
	resp, err := h.uc.Summary(r.Context())
	if err != nil {
		return nil, err
	}

	out := SummaryResponse{
		TotalValue:       resp.Summary.TotalValue,
		AssetCount:       resp.Summary.AssetCount,
		AllocatedPercent: resp.Summary.AllocatedPercent,
		Breakdown:        make([]TypeBreakdownResponse, 0, len(resp.Summary.Breakdown)),
		Allocations:      make([]NomineeAllocationResponse, 0, len(resp.Summary.Allocations)),
	}
	for _, b := range resp.Summary.Breakdown {
		out.Breakdown = append(out.Breakdown, TypeBreakdownResponse{
			Type:  b.Type.String(),
			Count: b.Count,
			Value: b.Value,
		})
	}
	for _, a := range resp.Summary.Allocations {
		out.Allocations = append(out.Allocations, NomineeAllocationResponse{
			NomineeID:    a.NomineeID,
			Name:         a.Name,
			SharePercent: a.SharePercent,
		})
	}

	return out, nil
}

func (h *HTTPEndpoint) ProofURL(r *router.Request) (any, error) {
	var req ProofURLRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProofURL(r.Context(), usecase.ProofURLInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.Size,
	})
	if err != nil {
		return nil, err
	}

	return ProofURLResponse{Key: resp.Key, PutURL: resp.PutURL, GetURL: resp.GetURL}, nil
}
