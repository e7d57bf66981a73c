package entity

import "time"

// Asset is a financial asset registered in the owner's vault.
type Asset struct {
	ID              int64
	OwnerMobile     string
	Type            AssetType
	InstitutionName string
	AccountNo       string
	Notes           string
	ProofKey        string
	Value           float64
	UpdatedAt       time.Time
}

// Nominee is a person designated to receive a share of the vault. The Aadhaar
// number is stored encrypted; only the ciphertext moves through this struct.
type Nominee struct {
	ID                int64
	OwnerMobile       string
	Name              string
	Relation          string
	Mobile            string
	Email             string
	AadhaarCiphertext string
	Verified          bool
	SharePercent      int16
	IDProofKey        string
	UpdatedAt         time.Time
}

// EmergencyRule configures inactivity-based emergency access for one owner.
type EmergencyRule struct {
	OwnerMobile       string
	InactivityDays    int32
	RequireDeathProof bool
	UpdatedAt         time.Time
}

// TypeBreakdown is the per-asset-type slice of the portfolio summary.
type TypeBreakdown struct {
	Type  AssetType
	Count int
	Value float64
}

// NomineeAllocation is one nominee's share in the summary.
type NomineeAllocation struct {
	NomineeID    int64
	Name         string
	SharePercent int16
}

// Summary aggregates the vault for the dashboard view.
type Summary struct {
	TotalValue       float64
	AssetCount       int
	Breakdown        []TypeBreakdown
	Allocations      []NomineeAllocation
	AllocatedPercent int16
}
