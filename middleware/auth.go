package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/services"
)

const callerKey = "caller"

// TokenVerifier resuelve el usuario dueño de un token bearer
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (models.Identity, error)
}

// CallerHandler es un handler de ruta protegida que recibe al usuario autenticado
type CallerHandler func(c *fiber.Ctx, caller models.Identity) error

// Authenticate valida el header Authorization: Bearer <token>. Si falla
// responde 401 sin llegar al handler; si la verificación falla por la base
// de datos devuelve el error para que termine en 500.
func Authenticate(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthenticated(c)
		}

		caller, err := verifier.Verify(c.UserContext(), token)
		if errors.Is(err, services.ErrUnauthenticated) {
			return unauthenticated(c)
		}
		if err != nil {
			return err
		}

		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// Caller devuelve el usuario que guardó Authenticate
func Caller(c *fiber.Ctx) (models.Identity, bool) {
	caller, ok := c.Locals(callerKey).(models.Identity)
	return caller, ok
}

// WithCaller adapta un CallerHandler a fiber.Handler. Debe ir después de
// Authenticate; sin usuario responde 401.
func WithCaller(h CallerHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := Caller(c)
		if !ok {
			return unauthenticated(c)
		}
		return h(c, caller)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  false,
		"message": "Unauthenticated.",
	})
}
