package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/aileon/awesome"
	"github.com/aileon/awesome/blog/handlers"
	"github.com/aileon/awesome/blog/migrations"
	"github.com/aileon/awesome/blog/models"
	"github.com/aileon/awesome/blog/views"
	"github.com/aileon/awesome/middlewares"
	"github.com/aileon/awesome/pkg/cache"
	"github.com/aileon/awesome/pkg/config"
	"github.com/aileon/awesome/pkg/db"
	"github.com/aileon/awesome/pkg/logger"
	"github.com/aileon/awesome/pkg/markdown"
	"github.com/aileon/awesome/pkg/metrics"
	"github.com/aileon/awesome/pkg/orm"
	"github.com/aileon/awesome/pkg/redis"
	"github.com/aileon/awesome/pkg/session"
)

const (
	markdownCacheTTL  = time.Hour
	markdownCacheSize = 512
	sentryFlush       = 2 * time.Second
)

func main() {
	configPath := flag.String("config", os.Getenv("AWESOME_CONFIG"), "YAML file overriding the default configuration")
	migrate := flag.Bool("migrate", true, "apply pending migrations at startup")
	flag.Parse()

	if err := run(*configPath, *migrate); err != nil {
		slog.Error("awesome stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(configPath string, migrate bool) error {
	ctx := context.Background()

	cfg, err := config.Load(ctx, config.FromFile(configPath))
	if err != nil {
		return err
	}

	logOpts := logger.Options{}
	if cfg.Debug {
		logOpts.Level = slog.LevelDebug
		logOpts.Text = true
	}
	log := logger.NewWithSentry(cfg.Sentry, logOpts, middlewares.RequestIDExtractor())
	slog.SetDefault(log)

	pool, err := db.Open(ctx, cfg.DB, db.WithLogger(log))
	if err != nil {
		return err
	}
	if migrate {
		if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
			_ = pool.Close()
			return err
		}
	}

	shutdown := []awesome.RunOption{
		awesome.Logger(log),
		awesome.ShutdownHook(db.Shutdown(pool)),
		awesome.ShutdownHook(logger.FlushSentry(sentryFlush)),
	}
	readiness := []awesome.HealthOption{
		awesome.WithReadinessCheck("db", db.Healthcheck(pool)),
	}

	var mdCache cache.Cache[string] = cache.NewMemory[string](markdownCacheSize, markdownCacheTTL)
	if cfg.Redis.URL != "" {
		client, err := redis.Open(ctx, cfg.Redis.URL, redis.WithLogger(log))
		if err != nil {
			_ = pool.Close()
			return err
		}
		mdCache = cache.NewRedis[string](client, cfg.Redis.Prefix, markdownCacheTTL)
		shutdown = append(shutdown, awesome.ShutdownHook(redis.Shutdown(client)))
		readiness = append(readiness, awesome.WithReadinessCheck("redis", redis.Healthcheck(client)))
		log.Info("markdown cache on redis", slog.String("prefix", cfg.Redis.Prefix))
	}

	store := models.NewStore(pool,
		orm.WithLogger(log),
		orm.WithAnomalyHook(metrics.RecordAnomaly),
	)
	codec := session.New(cfg.Session.Secret, store.LookupUser,
		session.WithTTL(time.Duration(cfg.Session.MaxAge)*time.Second),
		session.WithLogger(log),
	)
	md := markdown.New(markdown.WithCache(cache.NewLoader(mdCache, markdownCacheTTL)))

	blog := handlers.New(store, codec, md,
		handlers.WithCookie(cfg.Session.CookieName, cfg.Session.MaxAge),
	)

	app := awesome.New(
		awesome.WithCustomLogger(log),
		awesome.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Metrics(),
			middlewares.Recover(),
			middlewares.Authenticate(codec, cfg.Session.CookieName,
				middlewares.WithRejectHook(metrics.SessionRejectionsTotal.Inc),
			),
		),
		awesome.WithTemplates(views.NewRegistry()),
		awesome.WithStaticFiles("/static/", views.Static, "static"),
		awesome.WithHealthChecks(readiness...),
		awesome.WithMount("/metrics", metrics.Handler()),
		awesome.WithHandlers(blog),
	)

	log.Info("routes declared", slog.Int("count", len(blog.Table().All())))
	return app.Run(cfg.Addr, shutdown...)
}
