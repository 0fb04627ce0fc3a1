package models

import (
	"time"
)

// PacienteInput contiene los campos que el cliente puede asignar a un paciente
type PacienteInput struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fecha_nacimiento"`
}

// Paciente representa la tabla pacientes en la base de datos
type Paciente struct {
	ID int64 `json:"id" db:"id"`
	PacienteInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
