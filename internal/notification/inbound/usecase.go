package inbound

import (
	"context"

	"github.com/virasatlabs/virasat/internal/notification/usecase"
)

type uc interface {
	ConsumeNomineeInvited(ctx context.Context, in usecase.ConsumeNomineeInvitedInput) error
	ConsumeEmergencyRuleArmed(ctx context.Context, in usecase.ConsumeEmergencyRuleArmedInput) error
}
