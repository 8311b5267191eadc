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
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notify"
	"github.com/jhoicas/almacen-api/internal/application/report"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/almacen-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Alertado: registry en memoria (vive lo que vive el proceso) + fan-out
	// de observers. El observer Kafka solo se agrega si hay brokers.
	registry := notify.NewRegistry()
	fanout := notify.NewFanout(log)
	fanout.Attach(notify.NewPersistObserver(alertRepo))
	fanout.Attach(notify.NewLogObserver(log))
	if to := cfg.Alerts.EmailTo; to != "" {
		fanout.Attach(notify.NewEmailObserver(log, to))
	}
	if brokers := cfg.Alerts.KafkaBrokerList(); len(brokers) > 0 {
		publisher := infrakafka.NewAlertPublisher(brokers, cfg.Alerts.KafkaTopic)
		defer func() { _ = publisher.Close() }()
		fanout.Attach(publisher)
		log.Info().Strs("brokers", brokers).Str("topic", cfg.Alerts.KafkaTopic).Msg("publisher Kafka de alertas habilitado")
	}

	sweeper := inventory.NewStockAlertEngine(productRepo, fanout, registry)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, movementRepo, sweeper, log)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, productRepo)
	alertUC := usecase.NewAlertUseCase(alertRepo, registry)
	reportUC := report.NewReportUseCase(reportRepo, infrapdf.NewMarotoReportGenerator())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		SupplierUC:       supplierUC,
		AlertUC:          alertUC,
		RegisterMovement: registerMovementUC,
		ReportUC:         reportUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
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
