package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lizet96/consultorio-backend/handlers"
	"github.com/lizet96/consultorio-backend/middleware"
	"github.com/rs/zerolog"
)

const (
	appName = "Consultorio API"
	version = "1.0.0"
)

// Options es la configuración de la app HTTP
type Options struct {
	Logger      zerolog.Logger
	CORSOrigins string
	BodyLimit   int
	// Ping revisa la base de datos para /health; nil omite la revisión
	Ping func(ctx context.Context) error
}

// NewApp crea la app de Fiber con el ErrorHandler y todas las rutas
func NewApp(h *handlers.Handler, verifier middleware.TokenVerifier, opts Options) *fiber.App {
	bodyLimit := fiber.DefaultBodyLimit
	if opts.BodyLimit > bodyLimit {
		bodyLimit = opts.BodyLimit
	}
	app := fiber.New(fiber.Config{
		AppName:      appName + " v" + version,
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    bodyLimit,
	})
	SetupRoutes(app, h, verifier, opts)
	return app
}

// SetupRoutes configura todas las rutas de la aplicación
func SetupRoutes(app *fiber.App, h *handlers.Handler, verifier middleware.TokenVerifier, opts Options) {
	// Middleware global
	app.Use(middleware.RequestLogger(opts.Logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))
	app.Use(middleware.SecurityHeaders())
	if opts.BodyLimit > 0 {
		app.Use(middleware.BodySizeLimit(opts.BodyLimit))
	}

	app.Get("/health", health(opts.Ping))

	auth := middleware.Authenticate(verifier)
	protected := func(handler middleware.CallerHandler) []fiber.Handler {
		return []fiber.Handler{auth, middleware.WithCaller(handler)}
	}

	// === RUTAS PÚBLICAS ===
	authGroup := app.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/logout", protected(h.Logout)...)

	// === RUTAS PROTEGIDAS ===

	// --- PACIENTES ---
	pacientes := app.Group("/pacientes")
	pacientes.Get("/", protected(h.ListarPacientes)...)
	pacientes.Post("/", protected(h.CrearPaciente)...)
	pacientes.Get("/:id", protected(h.ObtenerPaciente)...)
	pacientes.Put("/:id", protected(h.ActualizarPaciente)...)
	pacientes.Patch("/:id", protected(h.ActualizarPaciente)...)
	pacientes.Delete("/:id", protected(h.EliminarPaciente)...)
	app.Get("/pacientesAll", protected(h.TodosLosPacientes)...)

	// --- MEDICOS ---
	medicos := app.Group("/medicos")
	medicos.Get("/", protected(h.ListarMedicos)...)
	medicos.Post("/", protected(h.CrearMedico)...)
	medicos.Get("/:id", protected(h.ObtenerMedico)...)
	medicos.Put("/:id", protected(h.ActualizarMedico)...)
	medicos.Patch("/:id", protected(h.ActualizarMedico)...)
	medicos.Delete("/:id", protected(h.EliminarMedico)...)
	app.Get("/medicosAll", protected(h.TodosLosMedicos)...)

	// --- CITAS ---
	citas := app.Group("/citas")
	citas.Get("/", protected(h.ListarCitas)...)
	citas.Post("/", protected(h.CrearCita)...)
	citas.Get("/:id", protected(h.ObtenerCita)...)
	citas.Put("/:id", protected(h.ActualizarCita)...)
	citas.Patch("/:id", protected(h.ActualizarCita)...)
	citas.Delete("/:id", protected(h.EliminarCita)...)
	app.Get("/citasAll", protected(h.TodasLasCitas)...)
	app.Get("/citasporpacientes", protected(h.CitasPorPacientes)...)
	app.Get("/citaspormedicos", protected(h.CitasPorMedicos)...)

	app.Use(handlers.NotFound)
}

func health(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{
			"status":   "ok",
			"message":  appName,
			"version":  version,
			"database": "ok",
		}
		if ping == nil {
			body["database"] = "unchecked"
			return c.JSON(body)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			zerolog.Ctx(c.UserContext()).Warn().Err(err).Msg("la base de datos no responde")
			body["status"] = "degraded"
			body["database"] = "unavailable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		return c.JSON(body)
	}
}

func corsOrigins(origins string) string {
	if origins == "" {
		return "*"
	}
	return origins
}
