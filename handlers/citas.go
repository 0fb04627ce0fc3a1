package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/validation"
)

const msgCitaNoEncontrada = "Cita no encontrado"

var citaRules = []validation.FieldRules{
	validation.Field("paciente_id", "required,numeric,exists=pacientes"),
	validation.Field("medico_id", "required,numeric,exists=medicos"),
	validation.Field("fecha_cita", "required,string,max=100"),
	validation.Field("motivo", "required,string,max=200"),
}

// ListarCitas devuelve las citas paginadas con el nombre del paciente y del médico
func (h *Handler) ListarCitas(c *fiber.Ctx, _ models.Identity) error {
	page, err := h.citas.List(c.UserContext(), pageParams(c))
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(PageResponse[models.CitaDetalle]{Status: true, Page: page})
}

// CrearCita guarda una cita; paciente_id y medico_id deben existir
func (h *Handler) CrearCita(c *fiber.Ctx, _ models.Identity) error {
	in, err := h.citaInput(c)
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}

	cita := &models.Cita{CitaInput: in}
	if err := h.citas.Create(c.UserContext(), cita); err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(Response{Status: true, Message: "Cita creado satisfactoriamente", Data: cita})
}

func (h *Handler) ObtenerCita(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	cita, err := h.citas.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(Response{Status: true, Data: cita})
}

func (h *Handler) ActualizarCita(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	in, err := h.citaInput(c)
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}

	cita := &models.Cita{ID: id, CitaInput: in}
	if err := h.citas.Update(c.UserContext(), cita); err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(Response{Status: true, Message: "Cita actualizada satisfactoriamente", Data: cita})
}

func (h *Handler) EliminarCita(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	if err := h.citas.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(Response{Status: true, Message: "Cita eliminada correctamente"})
}

func (h *Handler) TodasLasCitas(c *fiber.Ctx, _ models.Identity) error {
	citas, err := h.citas.All(c.UserContext())
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(Response{Status: true, Data: citas})
}

// CitasPorPacientes cuenta las citas agrupadas por nombre de paciente
func (h *Handler) CitasPorPacientes(c *fiber.Ctx, _ models.Identity) error {
	conteo, err := h.citas.CountByPaciente(c.UserContext())
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(Response{Status: true, Data: conteo})
}

// CitasPorMedicos cuenta las citas agrupadas por nombre de médico
func (h *Handler) CitasPorMedicos(c *fiber.Ctx, _ models.Identity) error {
	conteo, err := h.citas.CountByMedico(c.UserContext())
	if err != nil {
		return fail(c, err, msgCitaNoEncontrada)
	}
	return c.JSON(Response{Status: true, Data: conteo})
}

func (h *Handler) citaInput(c *fiber.Ctx) (models.CitaInput, error) {
	var in models.CitaInput
	body, err := parseBody(c)
	if err != nil {
		return in, err
	}
	if err := h.validator.Validate(c.UserContext(), body, citaRules...); err != nil {
		return in, err
	}
	// exists ya garantizó que ambos ids son enteros válidos
	body["paciente_id"], _ = toID(body["paciente_id"])
	body["medico_id"], _ = toID(body["medico_id"])
	err = models.Decode(body, &in)
	return in, err
}
