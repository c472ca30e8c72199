package httpserver

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"finitefield.org/catalog-web/internal/handlers"
	"finitefield.org/catalog-web/internal/i18n"
	"finitefield.org/catalog-web/internal/observability"
)

// views parses every .tmpl under dir. In dev mode templates are reparsed on
// each render so edits show up without a restart.
type views struct {
	dir   string
	dev   bool
	funcs template.FuncMap

	mu     sync.RWMutex
	cached *template.Template
}

func newViews(dir string, dev bool, bundle *i18n.Bundle) (*views, error) {
	v := &views{dir: dir, dev: dev, funcs: funcMap(bundle)}
	// parse once even in dev mode so broken templates fail at startup
	t, err := v.parse()
	if err != nil {
		return nil, err
	}
	v.cached = t
	return v, nil
}

func funcMap(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"t":        bundle.T,
		"fragment": handlers.NewFragment,
		// JSON-LD is built server side by encoding/json, which escapes <, > and &.
		"jsonld": func(s string) template.JS { return template.JS(s) },
		"add":    func(a, b int) int { return a + b },
		"now":    time.Now,
	}
}

func (v *views) parse() (*template.Template, error) {
	// ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(v.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("walk templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", v.dir)
	}
	return template.New("_root").Funcs(v.funcs).ParseFiles(files...)
}

func (v *views) templates() (*template.Template, error) {
	if v.dev {
		t, err := v.parse()
		if err != nil {
			return nil, err
		}
		v.mu.Lock()
		v.cached = t
		v.mu.Unlock()
		return t, nil
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.cached, nil
}

// render executes name into a buffer first so a failing template never
// leaves a half-written page behind.
func (v *views) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	logger := observability.FromContext(r.Context())
	t, err := v.templates()
	if err != nil {
		logger.Error("template parse failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("template execution failed", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
