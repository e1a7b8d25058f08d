package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/logistica-api/internal/application/auth"
	"github.com/jhoicas/logistica-api/internal/application/balancing"
	"github.com/jhoicas/logistica-api/internal/application/catalog"
	"github.com/jhoicas/logistica-api/internal/application/planning"
	"github.com/jhoicas/logistica-api/internal/application/stock"
	"github.com/jhoicas/logistica-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/logistica-api/internal/interfaces/http"
	"github.com/jhoicas/logistica-api/pkg/config"
	"github.com/jhoicas/logistica-api/pkg/logger"
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

	// Repositorios de lectura sobre el pool; las escrituras van por TxRunner.
	demandRepo := postgres.NewDemandLineRepository(pool)
	bomRepo := postgres.NewBomRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	nodeRepo := postgres.NewNodeRepository(pool)
	panelistRepo := postgres.NewPanelistRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	panelistStockRepo := postgres.NewPanelistStockRepository(pool)
	reqRepo := postgres.NewRequirementRepository(pool)
	shipRepo := postgres.NewShipmentRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	scanner := planning.NewDemandScanner(demandRepo, cfg.Engine.ScanPageSize)
	refLoader := planning.NewReferenceLoader(
		bomRepo, materialRepo, nodeRepo, panelistRepo, stockRepo, panelistStockRepo,
	)

	calculateUC := planning.NewCalculateUseCase(
		scanner, refLoader, txRunner, reqRepo, stockRepo, materialRepo, log,
	)
	proposeUC := planning.NewProposeShipmentsUseCase(scanner, refLoader, log)
	commitUC := planning.NewCommitShipmentsUseCase(txRunner, log)
	requirementUC := planning.NewRequirementActionsUseCase(txRunner, reqRepo, log)
	shipmentUC := planning.NewShipmentActionsUseCase(txRunner, shipRepo, log)
	stockUC := stock.NewUseCase(txRunner, stockRepo, panelistStockRepo, movRepo, alertRepo, log)
	catalogUC := catalog.NewUseCase(materialRepo)
	balancingUC := balancing.NewUseCase(balanceRepo, log)
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CalculateUC:   calculateUC,
		ProposeUC:     proposeUC,
		CommitUC:      commitUC,
		RequirementUC: requirementUC,
		ShipmentUC:    shipmentUC,
		StockUC:       stockUC,
		CatalogUC:     catalogUC,
		BalancingUC:   balancingUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
