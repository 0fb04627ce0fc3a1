package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/repository"
	"github.com/lizet96/consultorio-backend/services"
	"github.com/lizet96/consultorio-backend/validation"
	"github.com/rs/zerolog"
)

// fail traduce un error de validación, de repositorio o de servicio al sobre
// JSON con su código HTTP. notFound es el mensaje del 404 del recurso.
func fail(c *fiber.Ctx, err error, notFound string) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(Response{Status: false, Errors: verrs})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(Response{Status: false, Message: notFound})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(Response{Status: false, Errors: []string{msgUnauthorized}})
	case errors.Is(err, repository.ErrInvalidReference):
		// la cita apunta a un paciente o médico borrado entre la validación y el insert
		attr := "medico id"
		if strings.Contains(err.Error(), "paciente") {
			attr = "paciente id"
		}
		msg := strings.ReplaceAll(validation.MsgExists, ":attribute", attr)
		return c.Status(fiber.StatusBadRequest).JSON(Response{Status: false, Errors: []string{msg}})
	}
	return internalError(c, err)
}

func internalError(c *fiber.Ctx, err error) error {
	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(Response{Status: false, Message: msgInternal})
}

// ErrorHandler es el ErrorHandler de la app: errores de Fiber conservan su
// código y el resto termina en 500 con el sobre estándar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(Response{Status: false, Message: fe.Message})
	}
	return internalError(c, err)
}

// NotFound responde las rutas que no existen
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(Response{Status: false, Message: "Ruta no encontrada"})
}

// parseBody decodifica el body como objeto JSON. Un body vacío es un objeto
// vacío para que las reglas required reporten los campos faltantes.
func parseBody(c *fiber.Ctx) (map[string]interface{}, error) {
	input := map[string]interface{}{}
	body := c.Body()
	if len(body) == 0 {
		return input, nil
	}
	if err := json.Unmarshal(body, &input); err != nil || input == nil {
		return nil, validation.Errors{msgInvalidBody}
	}
	return input, nil
}

// parseID lee el parámetro :id. Un id que no es entero positivo no puede
// existir, así que se reporta como ErrNotFound.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, repository.ErrNotFound
	}
	return id, nil
}

// pageParams lee ?page= y ?per_page=
func pageParams(c *fiber.Ctx) models.PageParams {
	return models.NewPageParams(c.QueryInt("page", 1), c.QueryInt("per_page", models.DefaultPerPage))
}
