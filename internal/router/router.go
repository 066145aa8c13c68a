package router

import (
	"context"
	"time"

	"github.com/lyb5737-lyb77/inventory-management/internal/config"
	"github.com/lyb5737-lyb77/inventory-management/internal/handler"
	"github.com/lyb5737-lyb77/inventory-management/internal/infra"
	"github.com/lyb5737-lyb77/inventory-management/internal/middleware"
	"github.com/lyb5737-lyb77/inventory-management/internal/repository"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// rdb may be nil, which disables outbound request de-duplication.
// ctx bounds background work such as the rate limiter purge.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiter := middleware.NewRateLimiter(600, time.Minute)
	go limiter.RunPurge(ctx, 5*time.Minute)

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(limiter.Middleware())

	// ── Repositories ─────────────────────────────────────────────────────────
	itemRepo := repository.NewItemRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	groupRepo := repository.NewProductGroupRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ipRepo := repository.NewIPRepository(db)
	rentalRepo := repository.NewRentalRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var keys service.IdempotencyStore
	if rdb != nil {
		keys = infra.NewRedisIdempotency(rdb)
	}
	ledgerSvc := service.NewLedgerService(itemRepo, txRepo, cfg.DefaultWarehouse)
	itemSvc := service.NewItemService(itemRepo, cfg.DefaultWarehouse)
	catalogSvc := service.NewCatalogService(groupRepo, warehouseRepo, customerRepo)
	ipSvc := service.NewIPService(ipRepo, cfg.MaxRangeSize)
	rentalSvc := service.NewRentalService(rentalRepo)
	outboundSvc := service.NewOutboundService(ledgerSvc, warehouseRepo, customerRepo, mailer, keys,
		service.OutboundConfig{MaxItems: cfg.OutboundMaxItems, IdempotencyTTL: cfg.IdempotencyTTL()})

	// ── Handlers ─────────────────────────────────────────────────────────────
	itemsH := handler.NewItemsHandler(itemSvc, ledgerSvc)
	txH := handler.NewTransactionsHandler(ledgerSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	ipH := handler.NewIPHandler(ipSvc)
	rentalsH := handler.NewRentalsHandler(rentalSvc)
	outboundH := handler.NewOutboundHandler(outboundSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailer))

	admin := middleware.RequireRole(middleware.RoleAdmin)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/items", itemsH.List)
		v1.GET("/items/:id", itemsH.Get)
		v1.GET("/items/:id/stock/recompute", itemsH.RecomputeStock)
		items := v1.Group("/items", admin)
		{
			items.POST("", itemsH.Create)
			items.PATCH("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Delete)
		}

		v1.GET("/transactions", txH.List)
		v1.POST("/transactions", txH.Record)
		v1.GET("/transactions/range", txH.Range)
		v1.GET("/ledger/reconcile", admin, txH.Reconcile)

		v1.GET("/groups", catalogH.ListGroups)
		groups := v1.Group("/groups", admin)
		{
			groups.POST("", catalogH.CreateGroup)
			groups.PATCH("/:id", catalogH.UpdateGroup)
			groups.DELETE("/:id", catalogH.DeleteGroup)
		}

		v1.GET("/warehouses", catalogH.ListWarehouses)
		warehouses := v1.Group("/warehouses", admin)
		{
			warehouses.POST("", catalogH.CreateWarehouse)
			warehouses.PATCH("/:id", catalogH.UpdateWarehouse)
			warehouses.DELETE("/:id", catalogH.DeleteWarehouse)
		}

		v1.GET("/customers", catalogH.ListCustomers)
		v1.GET("/customers/search", catalogH.SearchCustomers)
		customers := v1.Group("/customers", admin)
		{
			customers.POST("", catalogH.CreateCustomer)
			customers.PATCH("/:id", catalogH.UpdateCustomer)
			customers.DELETE("/:id", catalogH.DeleteCustomer)
		}

		ip := v1.Group("/ip")
		{
			ip.GET("/ranges", ipH.ListRanges)
			ip.POST("/ranges", admin, ipH.CreateRange)
			ip.DELETE("/ranges/:id", admin, ipH.DeleteRange)
			ip.GET("/ranges/:id/rows", ipH.RangeRows)
			ip.GET("/details", ipH.ListDetails)
			ip.PUT("/details", ipH.SaveDetail)
			ip.DELETE("/details/:id", ipH.ResetDetail)
			ip.GET("/search", ipH.Search)
			ip.POST("/import", ipH.Import)
		}

		rentals := v1.Group("/rentals")
		{
			rentals.GET("", rentalsH.List)
			rentals.POST("", rentalsH.Create)
			rentals.PATCH("/:id", rentalsH.Update)
			rentals.DELETE("/:id", rentalsH.Delete)
			rentals.POST("/import", rentalsH.Import)
			rentals.GET("/export", rentalsH.Export)
		}

		v1.POST("/outbound", outboundH.Submit)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
