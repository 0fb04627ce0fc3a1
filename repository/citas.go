package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lizet96/consultorio-backend/models"
)

const citaDetalleSelect = `
	SELECT c.id, c.paciente_id, c.medico_id, c.fecha_cita, c.motivo, c.created_at, c.updated_at,
		p.nombre AS pacientes, m.nombre AS medicos
	FROM citas c
	JOIN pacientes p ON p.id = c.paciente_id
	JOIN medicos m ON m.id = c.medico_id`

type citaRepoPG struct{ db DBTX }

func NewCitaRepo(db DBTX) CitaRepository { return &citaRepoPG{db: db} }

func scanCitaDetalle(row pgx.Row) (*models.CitaDetalle, error) {
	var c models.CitaDetalle
	err := row.Scan(&c.ID, &c.PacienteID, &c.MedicoID, &c.FechaCita, &c.Motivo, &c.CreatedAt, &c.UpdatedAt,
		&c.Paciente, &c.Medico)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *citaRepoPG) Create(ctx context.Context, c *models.Cita) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO citas (paciente_id, medico_id, fecha_cita, motivo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		c.PacienteID, c.MedicoID, c.FechaCita, c.Motivo,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert cita: %w", mapError(err))
	}
	return nil
}

func (r *citaRepoPG) GetByID(ctx context.Context, id int64) (*models.CitaDetalle, error) {
	return scanCitaDetalle(r.db.QueryRow(ctx, citaDetalleSelect+` WHERE c.id = $1`, id))
}

func (r *citaRepoPG) Update(ctx context.Context, c *models.Cita) error {
	err := r.db.QueryRow(ctx, `
		UPDATE citas SET paciente_id = $2, medico_id = $3, fecha_cita = $4, motivo = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		c.ID, c.PacienteID, c.MedicoID, c.FechaCita, c.Motivo,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

func (r *citaRepoPG) Delete(ctx context.Context, id int64) error {
	return notFoundIfNoRows(r.db.Exec(ctx, `DELETE FROM citas WHERE id = $1`, id))
}

func (r *citaRepoPG) List(ctx context.Context, params models.PageParams) (*models.Page[models.CitaDetalle], error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		JOIN medicos m ON m.id = c.medico_id`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count citas: %w", err)
	}
	items, err := r.query(ctx, citaDetalleSelect+` ORDER BY c.id LIMIT $1 OFFSET $2`, params.PerPage, params.Offset())
	if err != nil {
		return nil, err
	}
	return models.NewPage(items, params, total), nil
}

func (r *citaRepoPG) All(ctx context.Context) ([]models.CitaDetalle, error) {
	return r.query(ctx, citaDetalleSelect+` ORDER BY c.id`)
}

// CountByPaciente cuenta citas agrupando por el nombre del paciente. Dos
// pacientes con el mismo nombre quedan en la misma fila.
func (r *citaRepoPG) CountByPaciente(ctx context.Context) ([]models.ConteoCitas, error) {
	return r.count(ctx, `
		SELECT COUNT(c.id), p.nombre
		FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		GROUP BY p.nombre
		ORDER BY p.nombre`)
}

// CountByMedico cuenta citas agrupando por el nombre del médico
func (r *citaRepoPG) CountByMedico(ctx context.Context) ([]models.ConteoCitas, error) {
	return r.count(ctx, `
		SELECT COUNT(c.id), m.nombre
		FROM citas c
		JOIN medicos m ON m.id = c.medico_id
		GROUP BY m.nombre
		ORDER BY m.nombre`)
}

func (r *citaRepoPG) query(ctx context.Context, sql string, args ...any) ([]models.CitaDetalle, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query citas: %w", err)
	}
	defer rows.Close()

	items := []models.CitaDetalle{}
	for rows.Next() {
		c, err := scanCitaDetalle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cita: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *citaRepoPG) count(ctx context.Context, sql string) ([]models.ConteoCitas, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("count citas: %w", err)
	}
	defer rows.Close()

	items := []models.ConteoCitas{}
	for rows.Next() {
		var c models.ConteoCitas
		if err := rows.Scan(&c.Count, &c.Nombre); err != nil {
			return nil, fmt.Errorf("scan conteo: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
