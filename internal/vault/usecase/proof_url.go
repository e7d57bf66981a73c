package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/storage"
)

const defaultPresignExpiry = 15 * time.Minute

type ProofURLInput struct {
	FileName    string `validate:"required,max=255"`
	ContentType string `validate:"required,max=100"`
	Size        int64  `validate:"gt=0,lte=10485760"`
}

type ProofURLOutput struct {
	Key    string
	PutURL string
	GetURL string
}

// ProofURL issues presigned upload and download URLs for a proof document.
// The object key is returned so the client can attach it to an asset or
// nominee record.
func (s *Usecase) ProofURL(ctx context.Context, in ProofURLInput) (*ProofURLOutput, error) {
	ctx, span := s.startSpan(ctx, "ProofURL")
	defer span.End()

	owner, err := s.authenticatedOwner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	bucket := s.cfg.GetString("modules.vault.storage.bucket")
	if bucket == "" {
		return nil, goerror.NewServerMsg(nil, "Document storage is not configured")
	}

	expiry := s.cfg.GetMinute("modules.vault.storage.presign_expiry_minutes")
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}

	key := fmt.Sprintf("proofs/%s/%d-%s", owner, s.uid.Generate(), in.FileName)

	putURL, err := s.storage.PresignPut(ctx, bucket, key, storage.PutOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
	}, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign proof upload", "owner", owner, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	getURL, err := s.storage.PresignGet(ctx, bucket, key, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign proof download", "owner", owner, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProofURLOutput{Key: key, PutURL: putURL, GetURL: getURL}, nil
}
