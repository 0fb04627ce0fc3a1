// Package repository guarda pacientes, médicos, citas, usuarios y tokens en
// PostgreSQL. Los repositorios no validan: reciben datos ya validados.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lizet96/consultorio-backend/models"
)

var (
	// ErrNotFound indica que el id no existe
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indica una violación de una restricción UNIQUE
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidReference indica una llave foránea que apunta a un registro inexistente
	ErrInvalidReference = errors.New("invalid reference")
)

// DBTX es lo que los repositorios necesitan de un pool o una transacción
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PacienteRepository interface {
	Create(ctx context.Context, p *models.Paciente) error
	GetByID(ctx context.Context, id int64) (*models.Paciente, error)
	Update(ctx context.Context, p *models.Paciente) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params models.PageParams) (*models.Page[models.Paciente], error)
	All(ctx context.Context) ([]models.Paciente, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type MedicoRepository interface {
	Create(ctx context.Context, m *models.Medico) error
	GetByID(ctx context.Context, id int64) (*models.Medico, error)
	Update(ctx context.Context, m *models.Medico) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params models.PageParams) (*models.Page[models.Medico], error)
	All(ctx context.Context) ([]models.Medico, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CitaRepository interface {
	Create(ctx context.Context, c *models.Cita) error
	GetByID(ctx context.Context, id int64) (*models.CitaDetalle, error)
	Update(ctx context.Context, c *models.Cita) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params models.PageParams) (*models.Page[models.CitaDetalle], error)
	All(ctx context.Context) ([]models.CitaDetalle, error)
	CountByPaciente(ctx context.Context) ([]models.ConteoCitas, error)
	CountByMedico(ctx context.Context) ([]models.ConteoCitas, error)
}

type UsuarioRepository interface {
	Create(ctx context.Context, u *models.Usuario) error
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type TokenRepository interface {
	Create(ctx context.Context, t *models.AccessToken) error
	GetByTokenID(ctx context.Context, tokenID string) (*models.AccessToken, error)
	Touch(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}

// mapError traduce los errores de pgx a los errores del paquete
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", ErrInvalidReference, pgErr.ConstraintName)
		}
	}
	return err
}

// notFoundIfNoRows convierte un DELETE/UPDATE sin filas afectadas en ErrNotFound
func notFoundIfNoRows(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
