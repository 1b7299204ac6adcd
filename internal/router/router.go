package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gvclassroom/classroom-api/internal/config"
	"github.com/gvclassroom/classroom-api/internal/handler"
	"github.com/gvclassroom/classroom-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	DashboardHandler   *handler.DashboardHandler
	SedeHandler        *handler.SedeHandler
	UsuarioHandler     *handler.UsuarioHandler
	PerfilHandler      *handler.PerfilHandler
	ClaseHandler       *handler.ClaseHandler
	MarcajeHandler     *handler.MarcajeHandler
	DispositivoHandler *handler.DispositivoHandler
	IncidenciaHandler  *handler.IncidenciaHandler
	ReporteHandler     *handler.ReporteHandler
	AuditHandler       *handler.AuditHandler
	SeedHandler        *handler.SeedHandler
	AuthMiddleware     fiber.Handler
	LoginLimiter       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	authMiddleware := deps.AuthMiddleware
	if authMiddleware == nil {
		authMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	}, authMiddleware)
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		if deps.LoginLimiter != nil {
			auth.Use(deps.LoginLimiter)
		}
		deps.AuthHandler.Register(auth)
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard"))
	}

	if deps.SedeHandler != nil {
		deps.SedeHandler.RegisterSedes(api.Group("/sedes"))
		deps.SedeHandler.RegisterSalas(api.Group("/salas"))
	}

	if deps.UsuarioHandler != nil {
		deps.UsuarioHandler.Register(api.Group("/usuarios"))
	}

	if deps.PerfilHandler != nil {
		deps.PerfilHandler.Register(api.Group("/perfiles"))
	}

	if deps.ClaseHandler != nil {
		deps.ClaseHandler.Register(api.Group("/clases"))
	}

	if deps.MarcajeHandler != nil {
		deps.MarcajeHandler.Register(api.Group("/marcajes"))
	}

	if deps.DispositivoHandler != nil {
		deps.DispositivoHandler.Register(api.Group("/dispositivos"))
	}

	if deps.IncidenciaHandler != nil {
		deps.IncidenciaHandler.Register(api.Group("/incidencias-dispositivos"))
	}

	if deps.ReporteHandler != nil {
		deps.ReporteHandler.Register(api.Group("/reportes-error"))
	}

	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(api.Group("/audit-logs"))
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}
}
