package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

const (
	defaultInactivityDays    = 90
	defaultRequireDeathProof = true
)

type RuleGetOutput struct {
	Rule entity.EmergencyRule
}

// RuleGet returns the owner's emergency rule, falling back to the defaults
// when none has been saved yet.
func (s *Usecase) RuleGet(ctx context.Context) (*RuleGetOutput, error) {
	ctx, span := s.startSpan(ctx, "RuleGet")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return nil, err
	}

	rule, err := s.repoDB.GetEmergencyRule(ctx, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		return &RuleGetOutput{Rule: entity.EmergencyRule{
			OwnerMobile:       owner,
			InactivityDays:    defaultInactivityDays,
			RequireDeathProof: defaultRequireDeathProof,
		}}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get emergency rule", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RuleGetOutput{Rule: *rule}, nil
}
