package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/letterkit/letterkit/pkg/blob"
	"github.com/letterkit/letterkit/pkg/config"
	"github.com/letterkit/letterkit/pkg/email"
	"github.com/letterkit/letterkit/pkg/logger"
	"github.com/letterkit/letterkit/pkg/mongo"
	"github.com/letterkit/letterkit/pkg/pg"
	"github.com/letterkit/letterkit/pkg/quota"
	"github.com/letterkit/letterkit/pkg/redis"
	"github.com/letterkit/letterkit/pkg/render"
	"github.com/letterkit/letterkit/pkg/requestid"
	"github.com/letterkit/letterkit/pkg/store"
	"github.com/letterkit/letterkit/svc/templates"
	"github.com/letterkit/letterkit/svc/tenant"
)

type appConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	Env             string        `env:"ENV" envDefault:"development"`
	StoreBackend    string        `env:"STORE_BACKEND" envDefault:"postgres"` // postgres, mongo or memory
	BlobBackend     string        `env:"BLOB_BACKEND" envDefault:"s3"`        // s3 or memory
	QuotaCache      string        `env:"QUOTA_CACHE" envDefault:"none"`       // redis or none
	TierLimitsFile  string        `env:"TIER_LIMITS_FILE"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		tenant.LoggerExtractor(),
	)}
	if cfg.Env == "production" {
		logOpts = append(logOpts, logger.WithProduction("letterkitd"))
	} else {
		logOpts = append(logOpts, logger.WithDevelopment("letterkitd"))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, probes, err := newDocumentStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	quotaOpts := []quota.Option{quota.WithLogger(log)}
	if cfg.TierLimitsFile != "" {
		limits, err := quota.LoadTierLimits(cfg.TierLimitsFile)
		if err != nil {
			return err
		}
		quotaOpts = append(quotaOpts, quota.WithTierLimits(limits))
	}
	if cfg.QuotaCache == "redis" {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		probes["redis"] = redis.Healthcheck(client)
		quotaOpts = append(quotaOpts, quota.WithCache(quota.NewRedisCache(client, quota.DefaultUsageTTL)))
	}
	quotas := quota.New(docs, quotaOpts...)

	renderer := render.New(docs, blobs, render.WithLogger(log))

	svcOpts := []templates.Option{templates.WithLogger(log)}
	if mailer := newMailer(cfg, log); mailer != nil {
		svcOpts = append(svcOpts, templates.WithMailer(mailer))
	}
	svc := templates.New(docs, blobs, renderer, quotas, svcOpts...)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", healthHandler(probes))
	r.Mount("/api/v1", svc.Handle())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.InfoContext(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newDocumentStore(ctx context.Context, cfg appConfig, log *slog.Logger) (store.DocumentStore, map[string]func(context.Context) error, error) {
	probes := make(map[string]func(context.Context) error)

	switch cfg.StoreBackend {
	case "postgres":
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
			return nil, nil, err
		}
		probes["postgres"] = pg.Healthcheck(pool)
		return store.NewPostgresStore(pool), probes, nil

	case "mongo":
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, mongoCfg)
		if err != nil {
			return nil, nil, err
		}
		probes["mongo"] = mongo.Healthcheck(db.Client())
		return store.NewMongoStore(db), probes, nil

	case "memory":
		return store.NewMemoryStore(), probes, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

func newBlobStore(ctx context.Context, cfg appConfig) (blob.Store, error) {
	switch cfg.BlobBackend {
	case "s3":
		var s3Cfg blob.S3Config
		if err := config.Load(&s3Cfg); err != nil {
			return nil, err
		}
		return blob.NewS3Store(ctx, s3Cfg)
	case "memory":
		return blob.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
}

// newMailer prefers Postmark when tokens are configured and falls back to the
// disk sender outside production. Returns nil when neither applies; previews
// then reject test email requests.
func newMailer(cfg appConfig, log *slog.Logger) email.Sender {
	var emailCfg email.Config
	if err := config.Load(&emailCfg); err != nil {
		return nil
	}

	if emailCfg.PostmarkServerToken != "" && emailCfg.PostmarkAccountToken != "" {
		sender, err := email.NewPostmarkSender(emailCfg)
		if err != nil {
			log.Error("postmark sender misconfigured, test emails disabled", "error", err)
			return nil
		}
		return sender
	}
	if cfg.Env != "production" {
		return email.NewDevSender(emailCfg.DevOutputDir)
	}
	return nil
}

func healthHandler(probes map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, probe := range probes {
			if err := probe(r.Context()); err != nil {
				http.Error(w, name+" unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
