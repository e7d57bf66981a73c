package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

type ConsumeNomineeInvitedInput struct {
	OwnerMobile   string `validate:"required,mobile"`
	NomineeID     int64  `validate:"required,gt=0"`
	NomineeName   string `validate:"required"`
	NomineeMobile string `validate:"required,mobile"`
	NomineeEmail  string `validate:"omitempty,email"`
	Relation      string `validate:"required"`
}

const nomineeInvitedHTML = `<p>Hello {{.nominee_name}},</p>
<p>You have been named as a nominee ({{.relation}}) on a {{.company_name}}
digital legacy vault. The vault owner has registered your details so that
their records can reach you when it matters.</p>
<p>No action is needed right now. If you believe this was a mistake, contact
{{.support_email}}.</p>
<p>{{.company_name}} &copy; {{.year}}</p>`

// ConsumeNomineeInvited tells a newly added nominee that a vault names them.
// The email is optional; the SMS invite always goes out.
func (s *Usecase) ConsumeNomineeInvited(ctx context.Context, in ConsumeNomineeInvitedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeNomineeInvited")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	if in.NomineeEmail != "" {
		data := s.baseEmailTemplateData()
		data["nominee_name"] = in.NomineeName
		data["relation"] = in.Relation

		body, err := s.renderTemplate("nominee_invited", nomineeInvitedHTML, data)
		if err != nil {
			slog.ErrorContext(ctx, "failed to render nominee invited email", "nominee_id", in.NomineeID, "error", err)
		} else if err := s.sendEmail(ctx, mailMessage(in.NomineeEmail, "You have been named as a nominee", body)); err != nil {
			slog.ErrorContext(ctx, "failed to send nominee invited email", "nominee_id", in.NomineeID, "error", err)
			return err
		}
	}

	smsBody := fmt.Sprintf("%s has named you as a nominee (%s) on their Virasat legacy vault.", maskMobile(in.OwnerMobile), in.Relation)
	if err := s.sender.Send(ctx, in.NomineeMobile, smsBody); err != nil {
		slog.ErrorContext(ctx, "failed to send nominee invited sms", "nominee_id", in.NomineeID, "error", err)
		return err
	}

	return nil
}

// maskMobile hides all but the last 4 digits.
func maskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return mobile
	}
	return "XXXXXX" + mobile[len(mobile)-4:]
}
