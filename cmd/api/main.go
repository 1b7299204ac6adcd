package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gvclassroom/classroom-api/internal/config"
	"github.com/gvclassroom/classroom-api/internal/database"
	"github.com/gvclassroom/classroom-api/internal/events"
	"github.com/gvclassroom/classroom-api/internal/handler"
	"github.com/gvclassroom/classroom-api/internal/middleware"
	"github.com/gvclassroom/classroom-api/internal/models"
	"github.com/gvclassroom/classroom-api/internal/repository"
	"github.com/gvclassroom/classroom-api/internal/router"
	"github.com/gvclassroom/classroom-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Sede{},
		&models.Sala{},
		&models.Perfil{},
		&models.Permiso{},
		&models.PerfilPermiso{},
		&models.Usuario{},
		&models.Clase{},
		&models.Inscripcion{},
		&models.Marcaje{},
		&models.Dispositivo{},
		&models.IncidenciaDispositivo{},
		&models.HistorialDispositivo{},
		&models.ReporteError{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, dashboard caching disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		publisher, err = events.Connect(cfg.NatsURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, event publishing disabled")
		} else {
			defer publisher.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	usuarioRepo := repository.NewUsuarioRepository(db)
	perfilRepo := repository.NewPerfilRepository(db)
	sedeRepo := repository.NewSedeRepository(db)
	claseRepo := repository.NewClaseRepository(db)
	marcajeRepo := repository.NewMarcajeRepository(db)
	dispositivoRepo := repository.NewDispositivoRepository(db)
	incidenciaRepo := repository.NewIncidenciaRepository(db)
	reporteRepo := repository.NewReporteRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	authService := service.NewAuthService(usuarioRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	usuarioService := service.NewUsuarioService(usuarioRepo, validate, logger)
	perfilService := service.NewPerfilService(perfilRepo, validate, logger)
	claseService := service.NewClaseService(claseRepo, logger)
	marcajeService := service.NewMarcajeService(marcajeRepo, usuarioRepo, auditRepo, publisher, validate, logger)
	dispositivoService := service.NewDispositivoService(dispositivoRepo, incidenciaRepo, publisher, validate, logger)
	incidenciaService := service.NewIncidenciaService(incidenciaRepo, sedeRepo, cfg.RehomologarPolicy, validate, logger)
	reporteService := service.NewReporteService(reporteRepo, validate, logger)
	dashboardService := service.NewDashboardService(usuarioRepo, dispositivoRepo, claseRepo, incidenciaRepo, redisClient, cfg.DashboardCacheTTL, logger)
	auditoriaService := service.NewAuditoriaService(auditRepo, usuarioRepo, logger)
	seedService := service.NewSeedService(db, cfg.SeedEnabled, cfg.SeedToken, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		DashboardHandler:   handler.NewDashboardHandler(dashboardService, logger),
		SedeHandler:        handler.NewSedeHandler(sedeRepo, logger),
		UsuarioHandler:     handler.NewUsuarioHandler(usuarioService, logger),
		PerfilHandler:      handler.NewPerfilHandler(perfilService, logger),
		ClaseHandler:       handler.NewClaseHandler(claseService, logger),
		MarcajeHandler:     handler.NewMarcajeHandler(marcajeService, logger),
		DispositivoHandler: handler.NewDispositivoHandler(dispositivoService, logger),
		IncidenciaHandler:  handler.NewIncidenciaHandler(incidenciaService, logger),
		ReporteHandler:     handler.NewReporteHandler(reporteService, logger),
		AuditHandler:       handler.NewAuditHandler(auditoriaService, logger),
		SeedHandler:        handler.NewSeedHandler(seedService, logger),
		AuthMiddleware:     middleware.OptionalAuth(cfg.JWTSecret),
		LoginLimiter:       middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
