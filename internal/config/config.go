package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix = "CATALOG_WEB_"

	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultEnvironment     = "local"
	defaultLogLevel        = "info"
	defaultSiteURL         = "http://localhost:8080"
	defaultBrand           = "G-SHOCK"
	defaultCMSTimeout      = 5 * time.Second
	defaultCMSRevalidate   = time.Hour
	defaultTemplatesDir    = "templates"
	defaultPublicDir       = "public"
	defaultLocalesDir      = "locales"
	defaultTransition      = 300 * time.Millisecond
	defaultAutoAdvance     = 4 * time.Second
	defaultSwipeThreshold  = 50
	defaultRailStep        = 300
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	CMS      CMSConfig
	Paths    PathConfig
	Carousel CarouselConfig
	Session  SessionConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// AppConfig holds site-wide presentation settings.
type AppConfig struct {
	Environment string
	Dev         bool
	LogLevel    string
	SiteURL     string
	Brand       string
}

// CMSConfig points at the headless content API.
type CMSConfig struct {
	BaseURL    string
	Timeout    time.Duration
	Revalidate time.Duration
}

// PathConfig lists on-disk resource directories.
type PathConfig struct {
	Templates string
	Public    string
	Locales   string
}

// CarouselConfig tunes the gallery and rail widgets.
type CarouselConfig struct {
	Transition     time.Duration
	AutoAdvance    time.Duration
	SwipeThreshold int
	RailStep       int
}

// SessionConfig configures the signed session cookie.
type SessionConfig struct {
	SigningKey string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit values that take precedence over everything else.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, the process
// environment and explicit maps, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}
	key := func(name string) string { return envPrefix + name }

	cfg := Config{
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, key("PORT"), stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:     durationWithDefault(lookup, key("READ_TIMEOUT"), defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, key("WRITE_TIMEOUT"), defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, key("IDLE_TIMEOUT"), defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, key("SHUTDOWN_TIMEOUT"), defaultShutdownTimeout),
		},
		App: AppConfig{
			Environment: strings.ToLower(stringWithDefault(lookup, key("ENV"), defaultEnvironment)),
			Dev:         boolWithDefault(lookup, key("DEV"), false),
			LogLevel:    strings.ToLower(stringWithDefault(lookup, key("LOG_LEVEL"), defaultLogLevel)),
			SiteURL:     strings.TrimRight(stringWithDefault(lookup, key("SITE_URL"), defaultSiteURL), "/"),
			Brand:       stringWithDefault(lookup, key("BRAND"), defaultBrand),
		},
		CMS: CMSConfig{
			BaseURL:    strings.TrimRight(strings.TrimSpace(stringWithDefault(lookup, key("CMS_BASE_URL"), "")), "/"),
			Timeout:    durationWithDefault(lookup, key("CMS_TIMEOUT"), defaultCMSTimeout),
			Revalidate: durationWithDefault(lookup, key("CMS_REVALIDATE"), defaultCMSRevalidate),
		},
		Paths: PathConfig{
			Templates: stringWithDefault(lookup, key("TEMPLATES_DIR"), defaultTemplatesDir),
			Public:    stringWithDefault(lookup, key("PUBLIC_DIR"), defaultPublicDir),
			Locales:   stringWithDefault(lookup, key("LOCALES_DIR"), defaultLocalesDir),
		},
		Carousel: CarouselConfig{
			Transition:     durationWithDefault(lookup, key("CAROUSEL_TRANSITION"), defaultTransition),
			AutoAdvance:    durationWithDefault(lookup, key("CAROUSEL_AUTO_ADVANCE"), defaultAutoAdvance),
			SwipeThreshold: intWithDefault(lookup, key("CAROUSEL_SWIPE_THRESHOLD"), defaultSwipeThreshold),
			RailStep:       intWithDefault(lookup, key("RAIL_SCROLL_STEP"), defaultRailStep),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, key("SESSION_SIGNING_KEY"), ""),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

func validateConfig(cfg Config) error {
	var invalid []string

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		invalid = append(invalid, "Server.Port")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		invalid = append(invalid, "Server.ShutdownTimeout")
	}
	switch cfg.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "App.LogLevel")
	}
	if !absoluteHTTPURL(cfg.App.SiteURL) {
		invalid = append(invalid, "App.SiteURL")
	}
	if cfg.CMS.BaseURL != "" && !absoluteHTTPURL(cfg.CMS.BaseURL) {
		invalid = append(invalid, "CMS.BaseURL")
	}
	if cfg.CMS.Timeout <= 0 {
		invalid = append(invalid, "CMS.Timeout")
	}
	if cfg.CMS.Revalidate < 0 {
		invalid = append(invalid, "CMS.Revalidate")
	}
	if cfg.Carousel.Transition < 0 {
		invalid = append(invalid, "Carousel.Transition")
	}
	if cfg.Carousel.AutoAdvance < 0 {
		invalid = append(invalid, "Carousel.AutoAdvance")
	}
	if cfg.Carousel.SwipeThreshold <= 0 {
		invalid = append(invalid, "Carousel.SwipeThreshold")
	}
	if cfg.Carousel.RailStep <= 0 {
		invalid = append(invalid, "Carousel.RailStep")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

func absoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	values, err := godotenv.Read(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
