package router

import (
	"net/http"

	authsvc "assetrail-backend/internal/application/auth"
	distsvc "assetrail-backend/internal/application/distributions"
	eventsvc "assetrail-backend/internal/application/events"
	stakingsvc "assetrail-backend/internal/application/staking"
	treasurysvc "assetrail-backend/internal/application/treasury"
	"assetrail-backend/internal/application/vault"
	"assetrail-backend/internal/config"
	"assetrail-backend/internal/infrastructure/database"
	"assetrail-backend/internal/interfaces/exporter"
	authhandler "assetrail-backend/internal/interfaces/handlers/auth"
	disthandler "assetrail-backend/internal/interfaces/handlers/distributions"
	eventhandler "assetrail-backend/internal/interfaces/handlers/events"
	healthhandler "assetrail-backend/internal/interfaces/handlers/health"
	stakinghandler "assetrail-backend/internal/interfaces/handlers/staking"
	treasuryhandler "assetrail-backend/internal/interfaces/handlers/treasury"
	"assetrail-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	exporter.Init()
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
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

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		DB:         db,
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", ah.Register)
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	if db != nil {
		mover := &vault.Ledger{}

		ts := &treasurysvc.Service{DB: db}
		th := &treasuryhandler.Handlers{Service: ts}
		tg := app.Group("/api/v1/treasuries", middleware.RequireAuth())
		tg.Post("/create-treasury", th.CreateTreasury)
		tg.Patch("/set-active", th.SetActive)
		tg.Post("/add-asset", th.AddAsset)
		tg.Get("/get-my-treasuries", th.GetMyTreasuries)
		tg.Get("/get-treasury/:treasury_id", th.GetTreasury)
		tg.Get("/get-assets/:treasury_id", th.GetAssets)
		tg.Get("/get-total-apy/:treasury_id", th.GetTotalApy)

		ss := &stakingsvc.Service{DB: db, Vault: mover}
		sh := &stakinghandler.Handlers{Service: ss}
		sg := app.Group("/api/v1/staking", middleware.RequireAuth())
		sg.Post("/deposit", sh.Deposit)
		sg.Post("/withdraw", sh.Withdraw)
		sg.Post("/claim-yield", sh.ClaimYield)
		sg.Get("/get-position/:treasury_id", sh.GetPosition)

		ds := &distsvc.Service{DB: db, Vault: mover}
		dh := &disthandler.Handlers{Service: ds}
		dg := app.Group("/api/v1/distributions", middleware.RequireAuth())
		dg.Post("/distribute-yield", dh.DistributeYield)

		es := &eventsvc.Service{DB: db}
		eh := &eventhandler.Handlers{Service: es}
		eg := app.Group("/api/v1/events", middleware.RequireAuth())
		eg.Get("/get-treasury-events/:treasury_id", eh.GetTreasuryEvents)
	}

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
