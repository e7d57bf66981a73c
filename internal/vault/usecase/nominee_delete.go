package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
)

type NomineeDeleteInput struct {
	ID int64 `validate:"required"`
}

func (s *Usecase) NomineeDelete(ctx context.Context, in NomineeDeleteInput) error {
	ctx, span := s.startSpan(ctx, "NomineeDelete")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.DeleteNominee(ctx, in.ID, owner)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("nominee not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete nominee", "owner", owner, "nominee_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
