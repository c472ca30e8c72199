package middleware

import (
	"context"
	"net/http"

	"finitefield.org/catalog-web/internal/i18n"
)

const (
	localeCookieName = "hl"
	defaultLang      = "en"
)

// Locale resolves the preferred language from ?hl=, the hl cookie or
// Accept-Language, in that order, and stores it in the session.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)
			if q := r.URL.Query().Get("hl"); q != "" {
				if lang, ok := bundle.Normalize(q); ok {
					if s.Locale != lang {
						s.Locale = lang
						s.MarkDirty()
					}
					http.SetCookie(w, &http.Cookie{Name: localeCookieName, Value: lang, Path: "/", SameSite: http.SameSiteLaxMode})
				}
			}
			if s.Locale == "" || !bundle.IsSupported(s.Locale) {
				if c, err := r.Cookie(localeCookieName); err == nil && c.Value != "" {
					if lang, ok := bundle.Normalize(c.Value); ok {
						s.Locale = lang
					}
				}
				if s.Locale == "" || !bundle.IsSupported(s.Locale) {
					s.Locale = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				s.MarkDirty()
			}
			w.Header().Set("Content-Language", s.Locale)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r)
		})
	}
}

// Lang returns current lang from session, the bundle fallback or "en".
func Lang(r *http.Request) string {
	if s := SessionFromContext(r.Context()); s != nil && s.Locale != "" {
		return s.Locale
	}
	if fb, ok := r.Context().Value(ctxKeyLocaleFB).(string); ok && fb != "" {
		return fb
	}
	return defaultLang
}
