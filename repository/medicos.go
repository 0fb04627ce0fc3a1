package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lizet96/consultorio-backend/models"
)

const medicoCols = `id, nombre, especialidad, email, telefono, created_at, updated_at`

type medicoRepoPG struct{ db DBTX }

func NewMedicoRepo(db DBTX) MedicoRepository { return &medicoRepoPG{db: db} }

func scanMedico(row pgx.Row) (*models.Medico, error) {
	var m models.Medico
	err := row.Scan(&m.ID, &m.Nombre, &m.Especialidad, &m.Email, &m.Telefono, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *medicoRepoPG) Create(ctx context.Context, m *models.Medico) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO medicos (nombre, especialidad, email, telefono)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		m.Nombre, m.Especialidad, m.Email, m.Telefono,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert medico: %w", mapError(err))
	}
	return nil
}

func (r *medicoRepoPG) GetByID(ctx context.Context, id int64) (*models.Medico, error) {
	return scanMedico(r.db.QueryRow(ctx, `SELECT `+medicoCols+` FROM medicos WHERE id = $1`, id))
}

func (r *medicoRepoPG) Update(ctx context.Context, m *models.Medico) error {
	err := r.db.QueryRow(ctx, `
		UPDATE medicos SET nombre = $2, especialidad = $3, email = $4, telefono = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		m.ID, m.Nombre, m.Especialidad, m.Email, m.Telefono,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return mapError(err)
}

func (r *medicoRepoPG) Delete(ctx context.Context, id int64) error {
	return notFoundIfNoRows(r.db.Exec(ctx, `DELETE FROM medicos WHERE id = $1`, id))
}

func (r *medicoRepoPG) List(ctx context.Context, params models.PageParams) (*models.Page[models.Medico], error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM medicos`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count medicos: %w", err)
	}
	items, err := r.query(ctx, `SELECT `+medicoCols+` FROM medicos ORDER BY id LIMIT $1 OFFSET $2`, params.PerPage, params.Offset())
	if err != nil {
		return nil, err
	}
	return models.NewPage(items, params, total), nil
}

func (r *medicoRepoPG) All(ctx context.Context) ([]models.Medico, error) {
	return r.query(ctx, `SELECT `+medicoCols+` FROM medicos ORDER BY id`)
}

func (r *medicoRepoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM medicos WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *medicoRepoPG) query(ctx context.Context, sql string, args ...any) ([]models.Medico, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query medicos: %w", err)
	}
	defer rows.Close()

	items := []models.Medico{}
	for rows.Next() {
		m, err := scanMedico(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medico: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}
