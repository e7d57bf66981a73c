package usecase

import (
	"context"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

type NomineeListItem struct {
	Nominee entity.Nominee
	// AadhaarMasked shows only the last 4 digits; the full number never
	// leaves the server.
	AadhaarMasked string
}

type NomineeListOutput struct {
	Nominees []NomineeListItem
}

func (s *Usecase) NomineeList(ctx context.Context) (*NomineeListOutput, error) {
	ctx, span := s.startSpan(ctx, "NomineeList")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return nil, err
	}

	nominees, err := s.repoDB.ListNominees(ctx, owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list nominees", "owner", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	items := make([]NomineeListItem, 0, len(nominees))
	for _, n := range nominees {
		item := NomineeListItem{Nominee: n}
		if n.AadhaarCiphertext != "" {
			aadhaar, err := s.encryptor.DecryptString(n.AadhaarCiphertext, s.ownerScope(owner))
			if err != nil {
				slog.ErrorContext(ctx, "failed to decrypt nominee aadhaar", "owner", owner, "nominee_id", n.ID, "error", err)
				return nil, goerror.NewServer(err)
			}
			item.AadhaarMasked = maskAadhaar(aadhaar)
		}
		items = append(items, item)
	}

	return &NomineeListOutput{Nominees: items}, nil
}

func maskAadhaar(aadhaar string) string {
	if len(aadhaar) < 4 {
		return "XXXX-XXXX-XXXX"
	}

	return "XXXX-XXXX-" + aadhaar[len(aadhaar)-4:]
}
