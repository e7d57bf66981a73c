package db

import (
	"context"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

func (s *DB) CreateNominee(ctx context.Context, n entity.Nominee) (err error) {
	ctx, span := s.startSpan(ctx, "CreateNominee")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO vault_nominees (id, owner_mobile, name, relation, mobile, email, aadhaar_enc, verified, share_percent, id_proof_key, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`,
		n.ID, n.OwnerMobile, n.Name, n.Relation, n.Mobile, n.Email, n.AadhaarCiphertext, n.Verified, n.SharePercent, n.IDProofKey,
	)
	return s.mapError(err)
}

func (s *DB) GetNomineeByID(ctx context.Context, id int64, ownerMobile string) (n *entity.Nominee, err error) {
	ctx, span := s.startSpan(ctx, "GetNomineeByID")
	defer func() { s.endSpan(span, err) }()

	var out entity.Nominee
	err = s.conn.QueryRow(ctx, `
		SELECT id, owner_mobile, name, relation, mobile, email, aadhaar_enc, verified, share_percent, id_proof_key, updated_at
		FROM vault_nominees
		WHERE id = $1 AND owner_mobile = $2`,
		id, ownerMobile,
	).Scan(&out.ID, &out.OwnerMobile, &out.Name, &out.Relation, &out.Mobile, &out.Email, &out.AadhaarCiphertext, &out.Verified, &out.SharePercent, &out.IDProofKey, &out.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) ListNominees(ctx context.Context, ownerMobile string) (nominees []entity.Nominee, err error) {
	ctx, span := s.startSpan(ctx, "ListNominees")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, owner_mobile, name, relation, mobile, email, aadhaar_enc, verified, share_percent, id_proof_key, updated_at
		FROM vault_nominees
		WHERE owner_mobile = $1
		ORDER BY id`,
		ownerMobile,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var n entity.Nominee
		if err = rows.Scan(&n.ID, &n.OwnerMobile, &n.Name, &n.Relation, &n.Mobile, &n.Email, &n.AadhaarCiphertext, &n.Verified, &n.SharePercent, &n.IDProofKey, &n.UpdatedAt); err != nil {
			return nil, s.mapError(err)
		}
		nominees = append(nominees, n)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return nominees, nil
}

// SumSharePercent totals nominee shares for the owner, optionally excluding
// one nominee (used when updating that nominee's own share).
func (s *DB) SumSharePercent(ctx context.Context, ownerMobile string, excludeID int64) (total int16, err error) {
	ctx, span := s.startSpan(ctx, "SumSharePercent")
	defer func() { s.endSpan(span, err) }()

	err = s.conn.QueryRow(ctx, `
		SELECT COALESCE(SUM(share_percent), 0)
		FROM vault_nominees
		WHERE owner_mobile = $1 AND id <> $2`,
		ownerMobile, excludeID,
	).Scan(&total)
	if err != nil {
		return 0, s.mapError(err)
	}

	return total, nil
}

func (s *DB) UpdateNominee(ctx context.Context, n entity.Nominee) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateNominee")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE vault_nominees
		SET name = $3, relation = $4, mobile = $5, email = $6, aadhaar_enc = $7, verified = $8, share_percent = $9, id_proof_key = $10, updated_at = now()
		WHERE id = $1 AND owner_mobile = $2`,
		n.ID, n.OwnerMobile, n.Name, n.Relation, n.Mobile, n.Email, n.AadhaarCiphertext, n.Verified, n.SharePercent, n.IDProofKey,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) DeleteNominee(ctx context.Context, id int64, ownerMobile string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteNominee")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM vault_nominees WHERE id = $1 AND owner_mobile = $2`, id, ownerMobile)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
