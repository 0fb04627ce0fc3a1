package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/validation"
)

const msgMedicoNoEncontrado = "Medico no encontrado"

var medicoRules = []validation.FieldRules{
	validation.Field("nombre", "required,string,min=1,max=100"),
	validation.Field("especialidad", "required,string,max=100"),
	validation.Field("email", "required,email,max=100"),
	validation.Field("telefono", "required,string,max=15"),
}

// ListarMedicos devuelve los médicos paginados
func (h *Handler) ListarMedicos(c *fiber.Ctx, _ models.Identity) error {
	page, err := h.medicos.List(c.UserContext(), pageParams(c))
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	return c.JSON(PageResponse[models.Medico]{Status: true, Page: page})
}

func (h *Handler) CrearMedico(c *fiber.Ctx, _ models.Identity) error {
	in, err := h.medicoInput(c)
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}

	m := &models.Medico{MedicoInput: in}
	if err := h.medicos.Create(c.UserContext(), m); err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	return c.JSON(Response{Status: true, Message: "Medico agregado satisfactoriamente", Data: m})
}

func (h *Handler) ObtenerMedico(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	m, err := h.medicos.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	return c.JSON(Response{Status: true, Data: m})
}

func (h *Handler) ActualizarMedico(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	in, err := h.medicoInput(c)
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}

	m := &models.Medico{ID: id, MedicoInput: in}
	if err := h.medicos.Update(c.UserContext(), m); err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	return c.JSON(Response{Status: true, Message: "Medico Actualizado", Data: m})
}

// EliminarMedico borra el médico y sus citas
func (h *Handler) EliminarMedico(c *fiber.Ctx, _ models.Identity) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	if err := h.medicos.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	return c.JSON(Response{Status: true, Message: "Medico eliminado correctamente"})
}

func (h *Handler) TodosLosMedicos(c *fiber.Ctx, _ models.Identity) error {
	medicos, err := h.medicos.All(c.UserContext())
	if err != nil {
		return fail(c, err, msgMedicoNoEncontrado)
	}
	return c.JSON(Response{Status: true, Data: medicos})
}

func (h *Handler) medicoInput(c *fiber.Ctx) (models.MedicoInput, error) {
	var in models.MedicoInput
	body, err := parseBody(c)
	if err != nil {
		return in, err
	}
	if err := h.validator.Validate(c.UserContext(), body, medicoRules...); err != nil {
		return in, err
	}
	err = models.Decode(body, &in)
	return in, err
}
