// Package handlers contiene los handlers HTTP de autenticación, pacientes,
// médicos y citas. Cada handler valida el body, arma el struct de entrada y
// llama al repositorio correspondiente.
package handlers

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lizet96/consultorio-backend/repository"
	"github.com/lizet96/consultorio-backend/services"
	"github.com/lizet96/consultorio-backend/validation"
)

// Deps son las dependencias de los handlers
type Deps struct {
	Pacientes repository.PacienteRepository
	Medicos   repository.MedicoRepository
	Citas     repository.CitaRepository
	Auth      *services.AuthService
}

// Handler agrupa los handlers de la API
type Handler struct {
	pacientes repository.PacienteRepository
	medicos   repository.MedicoRepository
	citas     repository.CitaRepository
	auth      *services.AuthService
	validator *validation.Validator
}

// New crea los handlers y registra las reglas unique y exists del validador
func New(d Deps) *Handler {
	h := &Handler{
		pacientes: d.Pacientes,
		medicos:   d.Medicos,
		citas:     d.Citas,
		auth:      d.Auth,
		validator: validation.New(),
	}
	h.validator.RegisterLookup("unique", validation.MsgUnique, h.unique)
	h.validator.RegisterLookup("exists", validation.MsgExists, h.exists)
	return h
}

// unique=users: el email no debe estar registrado
func (h *Handler) unique(ctx context.Context, table string, value interface{}) (bool, error) {
	if table != "users" {
		return false, fmt.Errorf("unique: unsupported table %q", table)
	}
	email, ok := value.(string)
	if !ok {
		return true, nil
	}
	taken, err := h.auth.EmailTaken(ctx, email)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// exists=pacientes|medicos: el id debe existir en la tabla
func (h *Handler) exists(ctx context.Context, table string, value interface{}) (bool, error) {
	id, ok := toID(value)
	if !ok {
		return false, nil
	}
	switch table {
	case "pacientes":
		return h.pacientes.Exists(ctx, id)
	case "medicos":
		return h.medicos.Exists(ctx, id)
	}
	return false, fmt.Errorf("exists: unsupported table %q", table)
}

// toID acepta números enteros positivos, también si llegan como texto
func toID(value interface{}) (int64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f < 1 || f != math.Trunc(f) || f > math.MaxInt64/2 {
		return 0, false
	}
	return int64(f), true
}
