package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/slotting-api/internal/application/slotting"
	"github.com/jhoicas/slotting-api/internal/infrastructure/csvstore"
	infrapdf "github.com/jhoicas/slotting-api/internal/infrastructure/pdf"
	"github.com/jhoicas/slotting-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/slotting-api/internal/interfaces/http"
	"github.com/jhoicas/slotting-api/pkg/config"
	"github.com/jhoicas/slotting-api/pkg/jwt"
	"github.com/jhoicas/slotting-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	verifier, err := jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	planUC := slotting.NewPlanUseCase(slotting.Deps{
		Items:      postgres.NewItemRepository(pool),
		Locations:  postgres.NewLocationRepository(pool),
		Orders:     postgres.NewOrderHistoryRepository(pool),
		Warehouses: postgres.NewWarehouseRepository(pool),
		Plans:      postgres.NewPlanRepository(pool),
		TxRunner:   postgres.NewTxRunner(pool),
		Report:     infrapdf.NewMarotoPlanReport(),
		Exporter:   csvstore.NewPlanWriter(),
	}, slotting.Defaults{
		// El prefijo puede venir de la bodega o de la petición; aquí es solo el respaldo.
		CongestionAislePrefix: cfg.Slotting.CongestionAislePrefix,
		VelocityTopN:          cfg.Slotting.VelocityTopN,
		TopMoves:              cfg.Slotting.TopMoves,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // corridas sobre bodegas grandes
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    "Slotting API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		PlanUC:      planUC,
		ServiceName: cfg.App.Name,
		Verifier:    verifier,
		Log:         log.Child(log.With().Str("component", "http")),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
