package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/jwt"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

type RulePutInput struct {
	InactivityDays    int32 `validate:"required,gte=1,lte=365"`
	RequireDeathProof bool
}

// RulePut saves the emergency rule. Tightening the inactivity threshold arms
// the rule, which is announced to the notification module.
func (s *Usecase) RulePut(ctx context.Context, in RulePutInput) error {
	ctx, span := s.startSpan(ctx, "RulePut")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	previousDays := int32(defaultInactivityDays)
	current, err := s.repoDB.GetEmergencyRule(ctx, owner)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get emergency rule", "owner", owner, "error", err)
		return goerror.NewServer(err)
	}
	if current != nil {
		previousDays = current.InactivityDays
	}

	if err := s.repoDB.UpsertEmergencyRule(ctx, entity.EmergencyRule{
		OwnerMobile:       owner,
		InactivityDays:    in.InactivityDays,
		RequireDeathProof: in.RequireDeathProof,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert emergency rule", "owner", owner, "error", err)
		return goerror.NewServer(err)
	}

	if in.InactivityDays < previousDays {
		var ownerEmail string
		if clm := jwt.GetAuth(ctx); clm != nil {
			ownerEmail = clm.Email
		}

		if err := s.repoMessaging.PublishEmergencyRuleArmed(ctx, EmergencyRuleArmedEvent{
			OwnerMobile:       owner,
			OwnerEmail:        ownerEmail,
			InactivityDays:    in.InactivityDays,
			RequireDeathProof: in.RequireDeathProof,
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish emergency rule armed event", "owner", owner, "error", err)
		}
	}

	return nil
}
