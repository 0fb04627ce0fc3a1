package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// BodySizeLimit rechaza con 413 las peticiones cuyo body supera maxSize bytes
func BodySizeLimit(maxSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(c.Body()) > maxSize {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"status":  false,
				"message": "El tamaño de la petición excede el límite permitido",
			})
		}
		return c.Next()
	}
}

// SecurityHeaders agrega headers de seguridad a todas las respuestas
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
