package usecase

import (
	"context"
	"log/slog"
)

type ConsumeEmergencyRuleArmedInput struct {
	OwnerMobile       string `validate:"required,mobile"`
	OwnerEmail        string `validate:"omitempty,email"`
	InactivityDays    int32  `validate:"required,gte=1,lte=365"`
	RequireDeathProof bool
}

const emergencyRuleArmedHTML = `<p>Hello,</p>
<p>The emergency access rule on your {{.company_name}} vault was updated.
Nominees can now request access after <b>{{.inactivity_days}} days</b> of
inactivity{{if .require_death_proof}}, with a death certificate required{{end}}.</p>
<p>If you did not make this change, contact {{.support_email}} immediately.</p>
<p>{{.company_name}} &copy; {{.year}}</p>`

// ConsumeEmergencyRuleArmed confirms a tightened inactivity threshold to the
// vault owner. Without an email on file there is nothing to deliver.
func (s *Usecase) ConsumeEmergencyRuleArmed(ctx context.Context, in ConsumeEmergencyRuleArmedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeEmergencyRuleArmed")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	if in.OwnerEmail == "" {
		slog.InfoContext(ctx, "skip emergency rule armed email, owner has no email", "owner_mobile", maskMobile(in.OwnerMobile))
		return nil
	}

	data := s.baseEmailTemplateData()
	data["inactivity_days"] = in.InactivityDays
	data["require_death_proof"] = in.RequireDeathProof

	body, err := s.renderTemplate("emergency_rule_armed", emergencyRuleArmedHTML, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render emergency rule armed email", "error", err)
		return nil
	}

	if err := s.sendEmail(ctx, mailMessage(in.OwnerEmail, "Your emergency access rule was updated", body)); err != nil {
		slog.ErrorContext(ctx, "failed to send emergency rule armed email", "error", err)
		return err
	}

	return nil
}
