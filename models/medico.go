package models

import (
	"time"
)

// MedicoInput contiene los campos que el cliente puede asignar a un médico
type MedicoInput struct {
	Nombre       string `json:"nombre"`
	Especialidad string `json:"especialidad"`
	Email        string `json:"email"`
	Telefono     string `json:"telefono"`
}

// Medico representa la tabla medicos en la base de datos
type Medico struct {
	ID int64 `json:"id" db:"id"`
	MedicoInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
