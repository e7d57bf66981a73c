package db

import (
	"context"

	"github.com/virasatlabs/virasat/internal/vault/entity"
)

func (s *DB) GetEmergencyRule(ctx context.Context, ownerMobile string) (rule *entity.EmergencyRule, err error) {
	ctx, span := s.startSpan(ctx, "GetEmergencyRule")
	defer func() { s.endSpan(span, err) }()

	var out entity.EmergencyRule
	err = s.conn.QueryRow(ctx, `
		SELECT owner_mobile, inactivity_days, require_death_proof, updated_at
		FROM vault_emergency_rules
		WHERE owner_mobile = $1`,
		ownerMobile,
	).Scan(&out.OwnerMobile, &out.InactivityDays, &out.RequireDeathProof, &out.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) UpsertEmergencyRule(ctx context.Context, rule entity.EmergencyRule) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertEmergencyRule")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO vault_emergency_rules (owner_mobile, inactivity_days, require_death_proof, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (owner_mobile)
		DO UPDATE SET inactivity_days = EXCLUDED.inactivity_days, require_death_proof = EXCLUDED.require_death_proof, updated_at = now()`,
		rule.OwnerMobile, rule.InactivityDays, rule.RequireDeathProof,
	)
	return s.mapError(err)
}
