package router

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	authsvc "wedding-backend/internal/application/auth"
	famsvc "wedding-backend/internal/application/families"
	giftsvc "wedding-backend/internal/application/gifts"
	healthsvc "wedding-backend/internal/application/health"
	invsvc "wedding-backend/internal/application/invitations"
	remsvc "wedding-backend/internal/application/reminders"
	rsvpsvc "wedding-backend/internal/application/rsvp"
	tplsvc "wedding-backend/internal/application/templates"
	tracksvc "wedding-backend/internal/application/tracking"
	wedsvc "wedding-backend/internal/application/weddings"
	"wedding-backend/internal/config"
	"wedding-backend/internal/infrastructure/database"
	"wedding-backend/internal/infrastructure/metrics"
	authhandler "wedding-backend/internal/interfaces/handlers/auth"
	famhandler "wedding-backend/internal/interfaces/handlers/families"
	gifthandler "wedding-backend/internal/interfaces/handlers/gifts"
	healthhandler "wedding-backend/internal/interfaces/handlers/health"
	invhandler "wedding-backend/internal/interfaces/handlers/invitations"
	remhandler "wedding-backend/internal/interfaces/handlers/reminders"
	rsvphandler "wedding-backend/internal/interfaces/handlers/rsvp"
	tplhandler "wedding-backend/internal/interfaces/handlers/templates"
	trackhandler "wedding-backend/internal/interfaces/handlers/tracking"
	wedhandler "wedding-backend/internal/interfaces/handlers/weddings"
	"wedding-backend/internal/middleware"
	"wedding-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
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

	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.NewErrorHandler(rdb),
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	m := metrics.New()
	probes := map[string]healthsvc.Probe{}
	transport := buildTransport(app, cfg, probes)

	collector := &healthsvc.Collector{
		Rdb:         rdb,
		FrontendURL: cfg.BaseURL,
		Probes:      probes,
		Client:      &http.Client{Timeout: 3 * time.Second},
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			collector.DB = sqlDB
		}
	}
	hh := &healthhandler.Handlers{Rdb: rdb, Collector: collector, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/", hh.Index)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	if db == nil {
		log.Warn().Msg("DATABASE_URL not set; only health routes are mounted")
		return app, db, rdb, nil
	}

	as := &authsvc.Service{DB: db}
	ah := &authhandler.Handlers{UserFinder: as, Service: as, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	ws := &wedsvc.Service{DB: db}
	fs := &famsvc.Service{DB: db}
	ts := &tplsvc.Service{DB: db}
	trs := &tracksvc.Service{DB: db}
	is := &invsvc.Service{
		Rdb:         rdb,
		Weddings:    ws,
		Families:    fs,
		Templates:   ts,
		Tracking:    trs,
		Transport:   transport,
		Metrics:     m,
		BaseURL:     cfg.BaseURL,
		Concurrency: cfg.DispatchConcurrency,
	}
	rs := &remsvc.Service{
		Rdb:         rdb,
		Weddings:    ws,
		Families:    fs,
		Templates:   ts,
		Tracking:    trs,
		Invitations: is,
		Transport:   transport,
		Metrics:     m,
		BaseURL:     cfg.BaseURL,
		Concurrency: cfg.DispatchConcurrency,
	}
	rsvp := &rsvpsvc.Service{
		DB:        db,
		Weddings:  ws,
		Families:  fs,
		Templates: ts,
		Tracking:  trs,
		Transport: transport,
		Metrics:   m,
		BaseURL:   cfg.BaseURL,
	}

	// Planner: owns weddings and picks which one the session works on.
	wh := &wedhandler.Handlers{Service: ws, Config: sessionCfg}
	pg := app.Group("/api/v1/weddings", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ManageWedding))
	pg.Get("/", wh.List)
	pg.Post("/", wh.Create)
	pg.Put("/:id", wh.Update)
	pg.Post("/:id/select", wh.Select)
	pg.Delete("/:id", wh.Delete)

	// Admin: everything scoped to the session's wedding.
	ag := app.Group("/api/v1/admin", middleware.RequireAuth(), middleware.RequireWedding())
	ag.Get("/wedding", middleware.AuthorizePermission(constants.ViewData), wh.Current)
	ag.Post("/users", middleware.AuthorizePermission(constants.ManageWedding), ah.CreateUser)

	remh := &remhandler.Handlers{Service: rs}
	ag.Post("/reminders", middleware.AuthorizePermission(constants.SendReminders), remh.Send)

	invh := &invhandler.Handlers{Service: is}
	ag.Post("/invitations/send", middleware.AuthorizePermission(constants.SendInvitations), invh.Send)

	tplh := &tplhandler.Handlers{Service: ts}
	ag.Get("/templates", middleware.AuthorizePermission(constants.ManageTemplates), tplh.List)
	ag.Put("/templates", middleware.AuthorizePermission(constants.ManageTemplates), tplh.Upsert)
	ag.Delete("/templates/:id", middleware.AuthorizePermission(constants.ManageTemplates), tplh.Delete)

	famh := &famhandler.Handlers{Service: fs, Weddings: ws}
	ag.Get("/families", middleware.AuthorizePermission(constants.ViewData), famh.List)
	ag.Post("/families", middleware.AuthorizePermission(constants.ManageFamilies), famh.Create)
	ag.Get("/families/:id", middleware.AuthorizePermission(constants.ViewData), famh.Get)

	gh := &gifthandler.Handlers{Service: &giftsvc.Service{DB: db}}
	ag.Get("/gifts", middleware.AuthorizePermission(constants.ManageGifts), gh.List)
	ag.Post("/gifts", middleware.AuthorizePermission(constants.ManageGifts), gh.Create)
	ag.Patch("/gifts/:id/confirm", middleware.AuthorizePermission(constants.ManageGifts), gh.Confirm)

	trh := &trackhandler.Handlers{Service: trs}
	ag.Get("/tracking-events", middleware.AuthorizePermission(constants.ViewData), trh.List)

	// Guests: the magic token is the credential.
	rh := &rsvphandler.Handlers{Service: rsvp}
	app.Get("/api/v1/rsvp/:token", rh.Get)
	app.Post("/api/v1/rsvp/:token", rh.Submit)

	return app, db, rdb, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
