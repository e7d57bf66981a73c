package inbound

import "time"

type AssetRequest struct {
	Type            string  `json:"type"`
	InstitutionName string  `json:"institution_name"`
	AccountNo       string  `json:"account_no"`
	Notes           string  `json:"notes"`
	ProofKey        string  `json:"proof_key"`
	Value           float64 `json:"value"`
}

type AssetResponse struct {
	ID              int64     `json:"id,string"`
	Type            string    `json:"type"`
	InstitutionName string    `json:"institution_name"`
	AccountNo       string    `json:"account_no"`
	Notes           string    `json:"notes"`
	ProofKey        string    `json:"proof_key,omitempty"`
	Value           float64   `json:"value"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AssetCreateResponse struct {
	ID int64 `json:"id,string"`
}

type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
}

type NomineeRequest struct {
	Name         string `json:"name"`
	Relation     string `json:"relation"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
	Aadhaar      string `json:"aadhaar"`
	Verified     bool   `json:"verified"`
	SharePercent int16  `json:"share_percent"`
	IDProofKey   string `json:"id_proof_key"`
}

type NomineeResponse struct {
	ID            int64     `json:"id,string"`
	Name          string    `json:"name"`
	Relation      string    `json:"relation"`
	Mobile        string    `json:"mobile"`
	Email         string    `json:"email,omitempty"`
	AadhaarMasked string    `json:"aadhaar_masked,omitempty"`
	Verified      bool      `json:"verified"`
	SharePercent  int16     `json:"share_percent"`
	IDProofKey    string    `json:"id_proof_key,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type NomineeCreateResponse struct {
	ID int64 `json:"id,string"`
}

type NomineeListResponse struct {
	Nominees []NomineeResponse `json:"nominees"`
}

type EmergencyRuleRequest struct {
	InactivityDays    int32 `json:"inactivity_days"`
	RequireDeathProof bool  `json:"require_death_proof"`
}

type EmergencyRuleResponse struct {
	InactivityDays    int32 `json:"inactivity_days"`
	RequireDeathProof bool  `json:"require_death_proof"`
}

type TypeBreakdownResponse struct {
	Type  string  `json:"type"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type NomineeAllocationResponse struct {
	NomineeID    int64  `json:"nominee_id,string"`
	Name         string `json:"name"`
	SharePercent int16  `json:"share_percent"`
}

type SummaryResponse struct {
	TotalValue       float64                     `json:"total_value"`
	AssetCount       int                         `json:"asset_count"`
	Breakdown        []TypeBreakdownResponse     `json:"breakdown"`
	Allocations      []NomineeAllocationResponse `json:"allocations"`
	AllocatedPercent int16                       `json:"allocated_percent"`
}

type ProofURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type ProofURLResponse struct {
	Key    string `json:"key"`
	PutURL string `json:"put_url"`
	GetURL string `json:"get_url"`
}
