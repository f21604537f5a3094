package router

import (
	"net/http"

	adminsvc "launchpad-backend/internal/application/admin"
	assetsvc "launchpad-backend/internal/application/assets"
	authsvc "launchpad-backend/internal/application/auth"
	lifecyclesvc "launchpad-backend/internal/application/lifecycle"
	pledgesvc "launchpad-backend/internal/application/pledges"
	poolsvc "launchpad-backend/internal/application/pools"
	settlementsvc "launchpad-backend/internal/application/settlement"
	usersvc "launchpad-backend/internal/application/users"
	"launchpad-backend/internal/config"
	"launchpad-backend/internal/constants"
	"launchpad-backend/internal/infrastructure/database"
	adminhandler "launchpad-backend/internal/interfaces/handlers/admin"
	assethandler "launchpad-backend/internal/interfaces/handlers/assets"
	authhandler "launchpad-backend/internal/interfaces/handlers/auth"
	healthhandler "launchpad-backend/internal/interfaces/handlers/health"
	lifecyclehandler "launchpad-backend/internal/interfaces/handlers/lifecycle"
	poolhandler "launchpad-backend/internal/interfaces/handlers/pools"
	settlementhandler "launchpad-backend/internal/interfaces/handlers/settlement"
	"launchpad-backend/internal/interfaces/handlers/tokenwebhook"
	userhandler "launchpad-backend/internal/interfaces/handlers/users"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/tokenbridge"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Mounted before the session middleware so the raw body is untouched.
	transferWebhook := &tokenwebhook.Handlers{WebhookSecret: cfg.BridgeWebhookSecret}
	app.Post("/api/v1/webhooks/token-transfer", func(c *fiber.Ctx) error {
		return transferWebhook.HandleTransfer(c)
	})

	sessionHandler, redisClient, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redisClient
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		BridgeURL:      cfg.BridgeURL,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		bridge := &tokenbridge.Recorder{
			DB: db,
			Inner: &tokenbridge.HTTPClient{
				BaseURL: cfg.BridgeURL,
				APIKey:  cfg.BridgeAPIKey,
			},
		}
		transferWebhook.Service = &pledgesvc.Service{DB: db}

		// Users (registration is public)
		us := &usersvc.Service{DB: db}
		uh := &userhandler.Handlers{Service: us}
		app.Post("/api/v1/users", uh.CreateUser)
		ug := app.Group("/api/v1/users", middleware.RequireAuth())
		ug.Put("/:id/role", middleware.AuthorizePermission(constants.ManageSettings), uh.UpdateRole)

		// Engine settings
		as := &adminsvc.Service{DB: db}
		adh := &adminhandler.Handlers{Service: as}
		sg := app.Group("/api/v1/settings", middleware.RequireAuth())
		sg.Get("/", middleware.AuthorizePermission(constants.ViewData), adh.GetSettings)
		sg.Put("/min-staking", middleware.AuthorizePermission(constants.ManageSettings), adh.SetMinStaking)
		sg.Put("/refund-percent", middleware.AuthorizePermission(constants.ManageSettings), adh.SetRefundPercent)
		sg.Put("/owner", middleware.AuthorizePermission(constants.ManageSettings), adh.ChangeOwner)

		// Asset registry
		tokens := &assetsvc.Service{DB: db, Bridge: bridge, EngineAccount: cfg.EngineAccount}
		tokh := &assethandler.Handlers{Service: tokens}
		tg := app.Group("/api/v1/assets", middleware.RequireAuth())
		tg.Get("/", middleware.AuthorizePermission(constants.ViewData), tokh.ListAssets)
		tg.Post("/", middleware.AuthorizePermission(constants.ManageAssets), tokh.AddToken)
		tg.Delete("/:token_id", middleware.AuthorizePermission(constants.ManageAssets), tokh.RemoveToken)

		// Pools and lifecycle
		ps := &poolsvc.Service{DB: db}
		ph := &poolhandler.Handlers{Service: ps}
		ls := &lifecyclesvc.Service{DB: db, Bridge: bridge}
		lh := &lifecyclehandler.Handlers{Service: ls}
		ss := &settlementsvc.Service{DB: db, Bridge: bridge}
		sh := &settlementhandler.Handlers{Service: ss}

		pg := app.Group("/api/v1/pools", middleware.RequireAuth())
		pg.Post("/", middleware.AuthorizePermission(constants.CreatePool), ph.CreatePool)
		pg.Get("/", middleware.AuthorizePermission(constants.ViewData), ph.ListPools)
		pg.Get("/:id", middleware.AuthorizePermission(constants.ViewData), ph.GetPool)
		pg.Get("/:id/records", middleware.AuthorizePermission(constants.ViewData), ph.GetUserRecords)
		pg.Get("/:id/balance", middleware.AuthorizePermission(constants.ViewData), ph.GetCreatorBalance)

		pg.Post("/:id/review", middleware.AuthorizePermission(constants.ReviewPool), lh.Review)
		pg.Post("/:id/check-timeout", lh.CheckTimeout)
		pg.Post("/:id/cancel", middleware.AuthorizePermission(constants.ManagePool), lh.Cancel)
		pg.Post("/:id/funding-window", middleware.AuthorizePermission(constants.ManagePool), lh.SetFundingWindow)
		pg.Post("/:id/close", middleware.AuthorizePermission(constants.CloseFunding), lh.CloseFunding)
		pg.Post("/:id/decision", middleware.AuthorizePermission(constants.ManagePool), lh.CreatorDecide)
		pg.Put("/:id/status", middleware.AuthorizePermission(constants.ForceStatus), lh.ForceStatus)

		pg.Post("/:id/claim", middleware.AuthorizePermission(constants.ClaimRefund), sh.ClaimRefund)
		pg.Post("/:id/withdraw", middleware.AuthorizePermission(constants.WithdrawCreator), sh.Withdraw)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
