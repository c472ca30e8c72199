// Package httpserver wires the storefront routes, middleware and views.
package httpserver

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/cms"
	"finitefield.org/catalog-web/internal/handlers"
	"finitefield.org/catalog-web/internal/i18n"
	"finitefield.org/catalog-web/internal/imageurl"
	mw "finitefield.org/catalog-web/internal/middleware"
	"finitefield.org/catalog-web/internal/observability"
	"finitefield.org/catalog-web/internal/richtext"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultLang           = "en"
)

var supportedLangs = []string{"en", "ja"}

// CarouselConfig tunes the gallery, product image and rail widgets.
type CarouselConfig struct {
	Transition     time.Duration
	AutoAdvance    time.Duration
	SwipeThreshold int
	RailStep       int
}

// Config carries everything the HTTP layer needs.
type Config struct {
	Address      string
	TemplatesDir string
	PublicDir    string
	LocalesDir   string
	DevMode      bool

	SiteURL string
	Brand   string

	Logger *zap.Logger
	CMS    *cms.Client

	// SessionKey signs the session cookie. A random key is generated when
	// empty, which invalidates sessions on restart.
	SessionKey    []byte
	SecureCookies bool

	Carousel CarouselConfig

	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration

	Now func() time.Time
}

type server struct {
	cfg      Config
	logger   *zap.Logger
	views    *views
	bundle   *i18n.Bundle
	cms      *cms.Client
	resolver imageurl.Resolver
	cards    handlers.Cards
	rich     *richtext.Renderer
	now      func() time.Time
}

// New builds the http.Server for cfg.
func New(cfg Config) (*http.Server, error) {
	h, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}, nil
}

// NewHandler builds the routed handler without a listener, for tests and
// embedding.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.CMS == nil {
		return nil, errors.New("httpserver: cms client is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Brand == "" {
		cfg.Brand = "G-SHOCK"
	}
	if len(cfg.SessionKey) == 0 {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("httpserver: session key: %w", err)
		}
		cfg.SessionKey = key
	}

	bundle, err := i18n.Load(cfg.LocalesDir, defaultLang, supportedLangs)
	if err != nil {
		return nil, fmt.Errorf("httpserver: load locales: %w", err)
	}
	v, err := newViews(cfg.TemplatesDir, cfg.DevMode, bundle)
	if err != nil {
		return nil, fmt.Errorf("httpserver: parse templates: %w", err)
	}
	resolver := imageurl.New(cfg.CMS.BaseURL(), "")
	s := &server{
		cfg:      cfg,
		logger:   cfg.Logger,
		views:    v,
		bundle:   bundle,
		cms:      cfg.CMS,
		resolver: resolver,
		cards:    handlers.Cards{Resolver: resolver, Brand: cfg.Brand},
		rich:     richtext.New(),
		now:      cfg.Now,
	}
	return s.routes(), nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy only behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLogger(s.logger))
	r.Use(observability.Trace)
	r.Use(observability.RequestLogger)
	r.Use(observability.Recovery(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(s.cfg.PublicDir, "assets"), "/assets/"))
	r.Get("/sitemap.xml", s.sitemap)

	// Streams stay outside Compress and Timeout: both would break a
	// long-lived text/event-stream.
	r.Get("/details/gallery/stream", s.galleryStream)
	r.Get("/product/{slug}/images/stream", s.productStream)

	sessions := mw.NewSessions(s.cfg.SessionKey, s.cfg.SecureCookies)
	pageStack := []func(http.Handler) http.Handler{
		mw.HTMX,
		sessions.Middleware,
		mw.Locale(s.bundle),
		mw.CSRF(s.cfg.SecureCookies),
	}

	r.Group(func(r chi.Router) {
		r.Use(pageStack...)
		r.Use(chimw.Compress(5))
		r.Use(chimw.Timeout(s.cfg.RequestTimeout))

		r.Get("/", s.home)
		r.Get("/details", s.lineup)
		r.Get("/product/{slug}", s.product)

		r.Route("/frag", func(r chi.Router) {
			r.Get("/recommended", s.fragRecommended)
			r.Get("/rail", s.fragRail)
			r.Get("/lineup", s.fragLineup)
			r.Post("/favorites", s.fragFavorites)
			r.Get("/gallery", s.fragGallery)
			r.Get("/product/{slug}/image", s.fragProductImage)
		})
	})

	// Set on the root router: a group's NotFound would not reach unmatched paths.
	r.NotFound(chi.Chain(pageStack...).HandlerFunc(s.notFound).ServeHTTP)
	return r
}
