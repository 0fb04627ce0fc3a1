package models

import (
	"time"
)

// CitaInput contiene los campos que el cliente puede asignar a una cita.
// FechaCita se guarda tal como llega, sin interpretarla como fecha.
type CitaInput struct {
	PacienteID int64  `json:"paciente_id"`
	MedicoID   int64  `json:"medico_id"`
	FechaCita  string `json:"fecha_cita"`
	Motivo     string `json:"motivo"`
}

// Cita representa la tabla citas en la base de datos
type Cita struct {
	ID int64 `json:"id" db:"id"`
	CitaInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CitaDetalle es una cita con el nombre del paciente y del médico
type CitaDetalle struct {
	Cita
	Paciente string `json:"pacientes"`
	Medico   string `json:"medicos"`
}

// ConteoCitas es una fila del reporte de citas agrupadas por nombre
type ConteoCitas struct {
	Count  int64  `json:"count"`
	Nombre string `json:"nombre"`
}
