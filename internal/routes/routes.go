package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/farmvest/farmvest/internal/auth"
	"github.com/farmvest/farmvest/internal/config"
	"github.com/farmvest/farmvest/internal/content"
	"github.com/farmvest/farmvest/internal/farm"
	"github.com/farmvest/farmvest/internal/identity"
	"github.com/farmvest/farmvest/internal/investment"
	"github.com/farmvest/farmvest/internal/middleware"
	"github.com/farmvest/farmvest/internal/notification"
	"github.com/farmvest/farmvest/internal/payout"
	"github.com/farmvest/farmvest/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() && d.DB == nil {
		return fiber.NewError(http.StatusInternalServerError, "database is required outside development")
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories: Postgres when a pool is present, in-memory otherwise.
	var (
		identityRepo   identity.Repository
		walletRepo     wallet.Repository
		farmRepo       farm.Repository
		investmentRepo investment.Repository
		payoutRepo     payout.Repository
		contentRepo    content.Repository
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
		farmRepo = farm.NewPostgresRepository(d.DB)
		investmentRepo = investment.NewPostgresRepository(d.DB)
		payoutRepo = payout.NewPostgresRepository(d.DB)
		contentRepo = content.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		walletRepo = wallet.NewMemoryRepository()
		farmRepo = farm.NewMemoryRepository()
		investmentRepo = investment.NewMemoryRepository()
		payoutRepo = payout.NewMemoryRepository()
		contentRepo = content.NewMemoryRepository()
	}

	// Services
	identitySvc := identity.NewService(identityRepo, d.Cfg.AdminEmail)
	walletSvc := wallet.NewService(walletRepo)
	farmSvc := farm.NewService(farmRepo)
	investmentSvc := investment.NewService(investmentRepo, farmRepo, walletSvc)
	notifier := notification.NewLoggerNotifier(d.Logger)
	payoutEngine := payout.NewEngine(payoutRepo, notifier)
	contentSvc := content.NewService(contentRepo, farmRepo)
	authSvc := auth.NewService(d.Cfg)

	// Handlers
	authHandler := auth.NewHandler(identitySvc, authSvc, walletSvc, d.Logger)
	walletHandler := wallet.NewHandler(walletSvc)
	farmHandler := farm.NewHandler(farmSvc)
	investmentHandler := investment.NewHandler(investmentSvc)
	payoutHandler := payout.NewHandler(payoutEngine, farmSvc, investmentSvc)
	contentHandler := content.NewHandler(contentSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)
	RegisterPublicRoutes(api, contentHandler, farmHandler)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Get("/auth/me", authHandler.Me)
	RegisterInvestorRoutes(protected, walletHandler, investmentHandler, payoutHandler)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireAdmin())
	RegisterAdminRoutes(admin, farmHandler, payoutHandler, contentHandler)

	return nil
}
