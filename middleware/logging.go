package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxLoggedBody   = 1000
	filteredValue   = "[FILTERED]"
	truncatedSuffix = "...[truncated]"
)

var sensitiveFields = []string{"password", "password_confirmation", "secret", "token"}

// RequestLogger registra una línea por petición con zerolog. Asigna un
// request_id (o respeta el X-Request-ID entrante), lo devuelve en la
// respuesta y deja un logger con ese id en el contexto de la petición, que
// los handlers recuperan con zerolog.Ctx.
func RequestLogger(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, rid)

		reqLogger := logger.With().Str("request_id", rid).Logger()
		c.SetUserContext(reqLogger.WithContext(c.UserContext()))

		if err := c.Next(); err != nil {
			// El ErrorHandler corre aquí para que el status registrado sea el final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		evt := eventForStatus(reqLogger, status)
		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())

		if caller, ok := Caller(c); ok {
			evt.Int64("user_id", caller.UserID)
		}
		if reqLogger.GetLevel() <= zerolog.DebugLevel && hasBody(c.Method()) && len(c.Body()) > 0 {
			evt.Str("body", filterSensitiveData(string(c.Body())))
		}
		evt.Msg("request")
		return nil
	}
}

func eventForStatus(logger zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return logger.Error()
	case status >= 400:
		return logger.Warn()
	default:
		return logger.Info()
	}
}

func hasBody(method string) bool {
	return method == fiber.MethodPost || method == fiber.MethodPut || method == fiber.MethodPatch
}

// filterSensitiveData oculta contraseñas y tokens del body antes de registrarlo
func filterSensitiveData(body string) string {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return truncate(body)
	}

	for _, field := range sensitiveFields {
		if _, exists := data[field]; exists {
			data[field] = filteredValue
		}
	}

	filtered, err := json.Marshal(data)
	if err != nil {
		return truncate(body)
	}
	return truncate(string(filtered))
}

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return strings.ToValidUTF8(s[:maxLoggedBody], "") + truncatedSuffix
}
