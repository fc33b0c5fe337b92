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
	"github.com/tu-usuario/gestion-pyme/internal/application/auth"
	"github.com/tu-usuario/gestion-pyme/internal/application/inventory"
	"github.com/tu-usuario/gestion-pyme/internal/application/sales"
	"github.com/tu-usuario/gestion-pyme/internal/application/usecase"
	infrapdf "github.com/tu-usuario/gestion-pyme/internal/infrastructure/pdf"
	"github.com/tu-usuario/gestion-pyme/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/gestion-pyme/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/gestion-pyme/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pyme/pkg/config"
	"github.com/tu-usuario/gestion-pyme/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	returnRepo := postgres.NewSaleReturnRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner)
	returnSaleUC := sales.NewReturnSaleUseCase(txRunner, saleRepo, returnRepo)
	listSalesUC := sales.NewListSalesUseCase(saleRepo)
	receiptUC := sales.NewReceiptUseCase(saleRepo, productRepo, clientRepo, infrapdf.NewMarotoReceiptGenerator())

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	listMovementsUC := inventory.NewListMovementsUseCase(movementRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Rate limiter compartido en Redis. Sin REDIS_ADDR queda deshabilitado.
	var limiter httpRouter.Limiter
	if cfg.Redis.Addr != "" {
		rl := infraredis.NewRateLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.RateLimitMax, cfg.Redis.RateLimitWindow)
		if err := rl.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, rate limiting deshabilitado")
		} else {
			limiter = rl
			defer rl.Close()
		}
	}

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
		Title:    "Gestión PyME API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale:       createSaleUC,
		ReturnSale:       returnSaleUC,
		ListSales:        listSalesUC,
		Receipt:          receiptUC,
		RegisterMovement: registerMovementUC,
		ListMovements:    listMovementsUC,
		ProductUC:        productUC,
		ClientUC:         clientUC,
		EmployeeUC:       employeeUC,
		AuthUC:           authUC,
		RateLimiter:      limiter,
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
