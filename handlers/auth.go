package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/repository"
	"github.com/lizet96/consultorio-backend/validation"
)

var (
	registerRules = []validation.FieldRules{
		validation.Field("name", "required,string,max=100"),
		validation.Field("email", "required,string,email,max=100,unique=users"),
		validation.Field("password", "required,string,min=8"),
	}
	loginRules = []validation.FieldRules{
		validation.Field("email", "required,string,email,max=100"),
		validation.Field("password", "required,string"),
	}
)

// Register crea el usuario y devuelve su primer token
func (h *Handler) Register(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return fail(c, err, "")
	}
	if err := h.validator.Validate(c.UserContext(), body, registerRules...); err != nil {
		return fail(c, err, "")
	}
	var req models.RegisterRequest
	if err := models.Decode(body, &req); err != nil {
		return fail(c, err, "")
	}

	_, token, err := h.auth.Register(c.UserContext(), req)
	if errors.Is(err, repository.ErrDuplicate) {
		// otro registro con el mismo email ganó la carrera después de validar
		return fail(c, validation.Errors{"The email has already been taken."}, "")
	}
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(Response{Status: true, Message: "User created successfully", Token: token})
}

// Login verifica las credenciales y emite un token nuevo
func (h *Handler) Login(c *fiber.Ctx) error {
	body, err := parseBody(c)
	if err != nil {
		return fail(c, err, "")
	}
	if err := h.validator.Validate(c.UserContext(), body, loginRules...); err != nil {
		return fail(c, err, "")
	}
	var req models.LoginRequest
	if err := models.Decode(body, &req); err != nil {
		return fail(c, err, "")
	}

	user, token, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "")
	}
	return c.JSON(Response{Status: true, Message: "User logged in successfully", Data: user, Token: token})
}

// Logout revoca todos los tokens del usuario autenticado
func (h *Handler) Logout(c *fiber.Ctx, caller models.Identity) error {
	if err := h.auth.Logout(c.UserContext(), caller); err != nil {
		return fail(c, err, "")
	}
	return c.JSON(Response{Status: true, Message: "User logged out successfully"})
}
