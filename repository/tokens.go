package repository

import (
	"context"
	"fmt"

	"github.com/lizet96/consultorio-backend/models"
)

type tokenRepoPG struct{ db DBTX }

func NewTokenRepo(db DBTX) TokenRepository { return &tokenRepoPG{db: db} }

func (r *tokenRepoPG) Create(ctx context.Context, t *models.AccessToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO personal_access_tokens (user_id, name, token_id, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		t.UserID, t.Name, t.TokenID, t.ExpiresAt,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert token: %w", mapError(err))
	}
	return nil
}

func (r *tokenRepoPG) GetByTokenID(ctx context.Context, tokenID string) (*models.AccessToken, error) {
	var t models.AccessToken
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, token_id, last_used_at, expires_at, created_at
		FROM personal_access_tokens WHERE token_id = $1`, tokenID,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.TokenID, &t.LastUsedAt, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *tokenRepoPG) Touch(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE personal_access_tokens SET last_used_at = NOW() WHERE id = $1`, id)
	return err
}

// DeleteByUser borra todos los tokens del usuario y devuelve cuántos eran
func (r *tokenRepoPG) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM personal_access_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
