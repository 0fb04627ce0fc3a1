package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/validation"
)

const msgPacienteNoEncontrado = "Paciente no encontrado"

var pacienteRules = []validation.FieldRules{
	validation.Field("nombre", "required,string,min=1,max=100"),
	validation.Field("apellido", "required,string,min=1,max=100"),
	validation.Field("email", "required,email,max=100"),
	validation.Field("telefono", "required,string,max=15"),
	validation.Field("fecha_nacimiento", "required,string,max=10"),
}

// ListarPacientes devuelve los pacientes paginados
func (h *Handler) ListarPacientes(c *fiber.Ctx, _ models.Identity) error {
	page, err := h.pacientes.List(c.UserContext(), pageParams(c))
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	return c.JSON(PageResponse[models.Paciente]{Status: true, Page: page})
}

// CrearPaciente valida el body y guarda el paciente
func (h *Handler) CrearPaciente(c *fiber.Ctx, _ models.Identity) error {
	in, err := h.pacienteInput(c)
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}

	p := &models.Paciente{PacienteInput: in}
	if err := h.pacientes.Create(c.UserContext(), p); err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	return c.JSON(Response{Status: true, Message: "Paciente creado satisfactoriamente", Data: p})
}

// ObtenerPaciente devuelve un paciente por id
func (h *Handler) ObtenerPaciente(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	p, err := h.pacientes.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	return c.JSON(Response{Status: true, Data: p})
}

// ActualizarPaciente reemplaza todos los campos editables del paciente
func (h *Handler) ActualizarPaciente(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	in, err := h.pacienteInput(c)
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}

	p := &models.Paciente{ID: id, PacienteInput: in}
	if err := h.pacientes.Update(c.UserContext(), p); err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	return c.JSON(Response{Status: true, Message: "Paciente actualizado", Data: p})
}

// EliminarPaciente borra el paciente y sus citas
func (h *Handler) EliminarPaciente(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	if err := h.pacientes.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	return c.JSON(Response{Status: true, Message: "Paciente eliminado correctamente"})
}

// TodosLosPacientes devuelve todos los pacientes sin paginar
func (h *Handler) TodosLosPacientes(c *fiber.Ctx, _ models.Identity) error {
	pacientes, err := h.pacientes.All(c.UserContext())
	if err != nil {
		return fail(c, err, msgPacienteNoEncontrado)
	}
	return c.JSON(Response{Status: true, Data: pacientes})
}

func (h *Handler) pacienteInput(c *fiber.Ctx) (models.PacienteInput, error) {
	var in models.PacienteInput
	body, err := parseBody(c)
	if err != nil {
		return in, err
	}
	if err := h.validator.Validate(c.UserContext(), body, pacienteRules...); err != nil {
		return in, err
	}
	err = models.Decode(body, &in)
	return in, err
}
