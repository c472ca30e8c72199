package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/cms"
	"finitefield.org/catalog-web/internal/config"
	"finitefield.org/catalog-web/internal/httpserver"
	"finitefield.org/catalog-web/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("web: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Flags override the directory settings for local runs.
	flag.StringVar(&cfg.Paths.Templates, "templates", cfg.Paths.Templates, "templates directory")
	flag.StringVar(&cfg.Paths.Public, "public", cfg.Paths.Public, "public assets directory")
	flag.StringVar(&cfg.Paths.Locales, "locales", cfg.Paths.Locales, "locales directory")
	flag.Parse()

	logger, err := observability.NewLogger(cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client := cms.NewClient(cfg.CMS.BaseURL,
		cms.WithLogger(logger.Named("cms")),
		cms.WithTimeout(cfg.CMS.Timeout),
		cms.WithRevalidate(cfg.CMS.Revalidate),
	)
	if cfg.CMS.BaseURL == "" {
		logger.Warn("CATALOG_WEB_CMS_BASE_URL not set; serving the built-in catalog")
	}
	if cfg.Session.SigningKey == "" {
		logger.Warn("CATALOG_WEB_SESSION_SIGNING_KEY not set; sessions reset on restart")
	}

	srv, err := httpserver.New(serverConfig(cfg, logger, client))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("web listening",
		zap.String("addr", srv.Addr),
		zap.Bool("dev", cfg.App.Dev),
		zap.String("env", cfg.App.Environment),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("web stopped")
	return nil
}

// serverConfig maps the loaded configuration onto the HTTP layer.
func serverConfig(cfg config.Config, logger *zap.Logger, client *cms.Client) httpserver.Config {
	var key []byte
	if cfg.Session.SigningKey != "" {
		key = []byte(cfg.Session.SigningKey)
	}
	return httpserver.Config{
		Address:      cfg.Addr(),
		TemplatesDir: cfg.Paths.Templates,
		PublicDir:    cfg.Paths.Public,
		LocalesDir:   cfg.Paths.Locales,
		DevMode:      cfg.App.Dev,
		SiteURL:      cfg.App.SiteURL,
		Brand:        cfg.App.Brand,
		Logger:       logger,
		CMS:          client,
		SessionKey:   key,
		// local runs are plain http
		SecureCookies: cfg.App.Environment != "local",
		Carousel: httpserver.CarouselConfig{
			Transition:     cfg.Carousel.Transition,
			AutoAdvance:    cfg.Carousel.AutoAdvance,
			SwipeThreshold: cfg.Carousel.SwipeThreshold,
			RailStep:       cfg.Carousel.RailStep,
		},
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
