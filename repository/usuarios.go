package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lizet96/consultorio-backend/models"
)

const usuarioCols = `id, name, email, password, created_at, updated_at`

type usuarioRepoPG struct{ db DBTX }

func NewUsuarioRepo(db DBTX) UsuarioRepository { return &usuarioRepoPG{db: db} }

func scanUsuario(row pgx.Row) (*models.Usuario, error) {
	var u models.Usuario
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// Create inserta el usuario. Password debe llegar ya cifrado.
func (r *usuarioRepoPG) Create(ctx context.Context, u *models.Usuario) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.Password,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", mapError(err))
	}
	return nil
}

// GetByEmail busca el usuario sin distinguir mayúsculas en el email
func (r *usuarioRepoPG) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	return scanUsuario(r.db.QueryRow(ctx, `SELECT `+usuarioCols+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *usuarioRepoPG) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email).Scan(&exists)
	return exists, err
}
