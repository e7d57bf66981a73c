package db

import (
	"context"

	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

func (s *DB) CreateAsset(ctx context.Context, a entity.Asset) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAsset")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO vault_assets (id, owner_mobile, type, institution_name, account_no, notes, proof_key, value, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		a.ID, a.OwnerMobile, a.Type, a.InstitutionName, a.AccountNo, a.Notes, a.ProofKey, a.Value,
	)
	return s.mapError(err)
}

func (s *DB) GetAssetByID(ctx context.Context, id int64, ownerMobile string) (a *entity.Asset, err error) {
	ctx, span := s.startSpan(ctx, "GetAssetByID")
	defer func() { s.endSpan(span, err) }()

	var out entity.Asset
	err = s.conn.QueryRow(ctx, `
		SELECT id, owner_mobile, type, institution_name, account_no, notes, proof_key, value, updated_at
		FROM vault_assets
		WHERE id = $1 AND owner_mobile = $2`,
		id, ownerMobile,
	).Scan(&out.ID, &out.OwnerMobile, &out.Type, &out.InstitutionName, &out.AccountNo, &out.Notes, &out.ProofKey, &out.Value, &out.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) ListAssets(ctx context.Context, ownerMobile string) (assets []entity.Asset, err error) {
	ctx, span := s.startSpan(ctx, "ListAssets")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, owner_mobile, type, institution_name, account_no, notes, proof_key, value, updated_at
		FROM vault_assets
		WHERE owner_mobile = $1
		ORDER BY id`,
		ownerMobile,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var a entity.Asset
		if err = rows.Scan(&a.ID, &a.OwnerMobile, &a.Type, &a.InstitutionName, &a.AccountNo, &a.Notes, &a.ProofKey, &a.Value, &a.UpdatedAt); err != nil {
			return nil, s.mapError(err)
		}
		assets = append(assets, a)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return assets, nil
}

func (s *DB) UpdateAsset(ctx context.Context, a entity.Asset) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateAsset")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE vault_assets
		SET type = $3, institution_name = $4, account_no = $5, notes = $6, proof_key = $7, value = $8, updated_at = now()
		WHERE id = $1 AND owner_mobile = $2`,
		a.ID, a.OwnerMobile, a.Type, a.InstitutionName, a.AccountNo, a.Notes, a.ProofKey, a.Value,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) DeleteAsset(ctx context.Context, id int64, ownerMobile string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteAsset")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM vault_assets WHERE id = $1 AND owner_mobile = $2`, id, ownerMobile)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
