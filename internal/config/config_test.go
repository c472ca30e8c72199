package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.App.Environment != "local" || cfg.App.Dev {
		t.Errorf("unexpected app defaults: %+v", cfg.App)
	}
	if cfg.App.Brand != "G-SHOCK" {
		t.Errorf("unexpected brand %q", cfg.App.Brand)
	}
	if cfg.CMS.BaseURL != "" {
		t.Errorf("expected empty cms base url, got %q", cfg.CMS.BaseURL)
	}
	if cfg.CMS.Revalidate != time.Hour {
		t.Errorf("unexpected revalidate window: %s", cfg.CMS.Revalidate)
	}
	if cfg.Carousel.Transition != 300*time.Millisecond || cfg.Carousel.AutoAdvance != 4*time.Second {
		t.Errorf("unexpected carousel timings: %+v", cfg.Carousel)
	}
	if cfg.Carousel.SwipeThreshold != 50 || cfg.Carousel.RailStep != 300 {
		t.Errorf("unexpected carousel distances: %+v", cfg.Carousel)
	}
	if cfg.Paths.Templates != "templates" || cfg.Paths.Public != "public" || cfg.Paths.Locales != "locales" {
		t.Errorf("unexpected paths: %+v", cfg.Paths)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"CATALOG_WEB_PORT":                  "9090",
		"CATALOG_WEB_ENV":                   "PROD",
		"CATALOG_WEB_DEV":                   "yes",
		"CATALOG_WEB_LOG_LEVEL":             "DEBUG",
		"CATALOG_WEB_SITE_URL":              "https://shop.example.com/",
		"CATALOG_WEB_CMS_BASE_URL":          "https://cms.example.com/",
		"CATALOG_WEB_CMS_TIMEOUT":           "2s",
		"CATALOG_WEB_CMS_REVALIDATE":        "0s",
		"CATALOG_WEB_CAROUSEL_TRANSITION":   "150ms",
		"CATALOG_WEB_CAROUSEL_AUTO_ADVANCE": "0s",
		"CATALOG_WEB_RAIL_SCROLL_STEP":      "240",
		"CATALOG_WEB_SESSION_SIGNING_KEY":   "k",
		"CATALOG_WEB_READ_TIMEOUT":          "not-a-duration",
	}
	cfg, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("unexpected port %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("invalid duration should keep the default, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.App.Environment != "prod" || !cfg.App.Dev || cfg.App.LogLevel != "debug" {
		t.Errorf("unexpected app config: %+v", cfg.App)
	}
	if cfg.App.SiteURL != "https://shop.example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.App.SiteURL)
	}
	if cfg.CMS.BaseURL != "https://cms.example.com" || cfg.CMS.Timeout != 2*time.Second || cfg.CMS.Revalidate != 0 {
		t.Errorf("unexpected cms config: %+v", cfg.CMS)
	}
	if cfg.Carousel.Transition != 150*time.Millisecond || cfg.Carousel.AutoAdvance != 0 || cfg.Carousel.RailStep != 240 {
		t.Errorf("unexpected carousel config: %+v", cfg.Carousel)
	}
	if cfg.Session.SigningKey != "k" {
		t.Errorf("unexpected signing key %q", cfg.Session.SigningKey)
	}
}

func TestLoadHonoursPlainPort(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "3000"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Fatalf("expected PORT to be used, got %s", cfg.Server.Port)
	}

	cfg, err = Load(WithEnvMap(map[string]string{"PORT": "3000", "CATALOG_WEB_PORT": "4000"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "4000" {
		t.Fatalf("expected prefixed port to win, got %s", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"CATALOG_WEB_PORT":                     "http",
		"CATALOG_WEB_LOG_LEVEL":                "verbose",
		"CATALOG_WEB_CMS_BASE_URL":             "cms.example.com",
		"CATALOG_WEB_CAROUSEL_SWIPE_THRESHOLD": "-1",
	}
	_, err := Load(WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Server.Port", "App.LogLevel", "CMS.BaseURL", "Carousel.SwipeThreshold"}
	if !reflect.DeepEqual(verr.Fields(), want) {
		t.Fatalf("unexpected invalid fields: %v", verr.Fields())
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nCATALOG_WEB_CMS_BASE_URL=\"https://dotenv.example.com\"\nexport CATALOG_WEB_BRAND=Casio\nCATALOG_WEB_PORT=7070\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(
		WithEnvFile(path),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"CATALOG_WEB_PORT": "7171"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CMS.BaseURL != "https://dotenv.example.com" {
		t.Errorf("unexpected base url %q", cfg.CMS.BaseURL)
	}
	if cfg.App.Brand != "Casio" {
		t.Errorf("unexpected brand %q", cfg.App.Brand)
	}
	if cfg.Server.Port != "7171" {
		t.Errorf("explicit map should override .env, got %s", cfg.Server.Port)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}
}
