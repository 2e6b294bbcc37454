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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/heleta-pos/docs"
	appanalytics "github.com/jhoicas/heleta-pos/internal/application/analytics"
	"github.com/jhoicas/heleta-pos/internal/application/inventory"
	"github.com/jhoicas/heleta-pos/internal/application/sales"
	"github.com/jhoicas/heleta-pos/internal/application/usecase"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
	"github.com/jhoicas/heleta-pos/internal/infrastructure/cache"
	"github.com/jhoicas/heleta-pos/internal/infrastructure/memory"
	"github.com/jhoicas/heleta-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/heleta-pos/internal/interfaces/http"
	"github.com/jhoicas/heleta-pos/pkg/config"
	"github.com/jhoicas/heleta-pos/pkg/logger"
)

// txRunner lo cumplen tanto postgres.TxRunner como memory.Store.
type txRunner interface {
	sales.TxRunner
	inventory.TxRunner
}

// backend agrupa los puertos de persistencia del almacenamiento elegido.
type backend struct {
	tx        txRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
	sales     repository.SaleRepository
	analytics repository.AnalyticsRepository
	close     func()
}

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
		Str("backend", cfg.DB.Backend).
		Dur("lock_timeout", cfg.Sales.LockTimeout).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var dashboardCache appanalytics.DashboardCache = cache.NoopDashboardCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisDashboardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, dashboard sin caché")
			_ = redisCache.Close()
		} else {
			dashboardCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}

	loc := cfg.App.Location()
	productUC := usecase.NewProductUseCase(store.products)
	registerMovementUC := inventory.NewRegisterMovementUseCase(store.tx)
	movementQueryUC := inventory.NewMovementQueryUseCase(store.movements)
	recordSaleUC := sales.NewRecordSaleUseCase(store.tx)
	saleQueryUC := sales.NewQueryUseCase(store.sales)
	dashboardUC := appanalytics.NewDashboardUseCase(store.analytics, dashboardCache, appanalytics.DashboardOptions{
		Location:          loc,
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
		CacheTTL:          cfg.Dashboard.CacheTTL,
	})
	salesReportUC := appanalytics.NewSalesReportUseCase(store.analytics, loc)

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
		Title:    "Heleta POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": cfg.DB.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		RecordSale:       recordSaleUC,
		SaleQuery:        saleQueryUC,
		DashboardUC:      dashboardUC,
		SalesReport:      salesReportUC,
		JWTSecret:        cfg.JWT.Secret,
		Logger:           log,
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

// openBackend abre PostgreSQL (con migraciones) o el store en memoria con datos de demo.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.DB.Backend == config.BackendMemory {
		store := memory.New(cfg.Sales.LockTimeout)
		store.Seed(demoProducts()...)
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
		return &backend{
			tx:        store,
			products:  store.Products(),
			movements: store.Movements(),
			sales:     store.Sales(),
			analytics: store.Analytics(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Msg("migraciones aplicadas")
	return &backend{
		tx:        postgres.NewTxRunner(pool, cfg.Sales.LockTimeout),
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}

func demoProducts() []entity.Product {
	return []entity.Product{
		{ID: uuid.NewString(), Name: "Helado de chocolate", Price: decimal.RequireFromString("12.00"), Stock: 40, Category: "Helados"},
		{ID: uuid.NewString(), Name: "Helado de frutilla", Price: decimal.RequireFromString("12.00"), Stock: 35, Category: "Helados"},
		{ID: uuid.NewString(), Name: "Cono doble", Price: decimal.RequireFromString("8.50"), Stock: 60, Category: "Conos"},
		{ID: uuid.NewString(), Name: "Paleta de limón", Price: decimal.RequireFromString("5.00"), Stock: 8, Category: "Paletas"},
		{ID: uuid.NewString(), Name: "Batido de vainilla", Price: decimal.RequireFromString("15.00"), Stock: 20, Category: "Bebidas"},
	}
}
