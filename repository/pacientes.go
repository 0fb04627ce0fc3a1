package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lizet96/consultorio-backend/models"
)

const pacienteCols = `id, nombre, apellido, email, telefono, fecha_nacimiento, created_at, updated_at`

type pacienteRepoPG struct{ db DBTX }

func NewPacienteRepo(db DBTX) PacienteRepository { return &pacienteRepoPG{db: db} }

func scanPaciente(row pgx.Row) (*models.Paciente, error) {
	var p models.Paciente
	err := row.Scan(&p.ID, &p.Nombre, &p.Apellido, &p.Email, &p.Telefono, &p.FechaNacimiento, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *pacienteRepoPG) Create(ctx context.Context, p *models.Paciente) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO pacientes (nombre, apellido, email, telefono, fecha_nacimiento)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		p.Nombre, p.Apellido, p.Email, p.Telefono, p.FechaNacimiento,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert paciente: %w", mapError(err))
	}
	return nil
}

func (r *pacienteRepoPG) GetByID(ctx context.Context, id int64) (*models.Paciente, error) {
	return scanPaciente(r.db.QueryRow(ctx, `SELECT `+pacienteCols+` FROM pacientes WHERE id = $1`, id))
}

func (r *pacienteRepoPG) Update(ctx context.Context, p *models.Paciente) error {
	err := r.db.QueryRow(ctx, `
		UPDATE pacientes SET nombre = $2, apellido = $3, email = $4, telefono = $5,
			fecha_nacimiento = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		p.ID, p.Nombre, p.Apellido, p.Email, p.Telefono, p.FechaNacimiento,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func (r *pacienteRepoPG) Delete(ctx context.Context, id int64) error {
	return notFoundIfNoRows(r.db.Exec(ctx, `DELETE FROM pacientes WHERE id = $1`, id))
}

func (r *pacienteRepoPG) List(ctx context.Context, params models.PageParams) (*models.Page[models.Paciente], error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pacientes`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count pacientes: %w", err)
	}
	items, err := r.query(ctx, `SELECT `+pacienteCols+` FROM pacientes ORDER BY id LIMIT $1 OFFSET $2`, params.PerPage, params.Offset())
	if err != nil {
		return nil, err
	}
	return models.NewPage(items, params, total), nil
}

func (r *pacienteRepoPG) All(ctx context.Context) ([]models.Paciente, error) {
	return r.query(ctx, `SELECT `+pacienteCols+` FROM pacientes ORDER BY id`)
}

func (r *pacienteRepoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pacientes WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *pacienteRepoPG) query(ctx context.Context, sql string, args ...any) ([]models.Paciente, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query pacientes: %w", err)
	}
	defer rows.Close()

	items := []models.Paciente{}
	for rows.Next() {
		p, err := scanPaciente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan paciente: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}
