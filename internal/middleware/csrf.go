package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"
)

const (
	// CSRFCookieName carries the double-submit token.
	CSRFCookieName = "csrf_token"
	// CSRFHeader is the header htmx sends the token in.
	CSRFHeader = "X-CSRF-Token"
	// CSRFField is the form field fallback for plain form posts.
	CSRFField = "csrf_token"
)

// CSRF issues a CSRF cookie tied to the session token and verifies that
// modifying requests echo it in a header or form field.
func CSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := GetSession(r)
			token := s.CSRFToken
			if token == "" {
				token = newCSRFToken()
				s.CSRFToken = token
				s.MarkDirty()
			}

			if c, err := r.Cookie(CSRFCookieName); err != nil || c.Value != token {
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: false,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(24 * time.Hour),
				})
			}

			if !isSafeMethod(r.Method) {
				sent := r.Header.Get(CSRFHeader)
				if sent == "" {
					sent = r.PostFormValue(CSRFField)
				}
				c, err := r.Cookie(CSRFCookieName)
				if sent == "" || sent != token || err != nil || c.Value != token {
					rejectCSRF(w, r)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFToken returns the token templates should embed for the current request.
func CSRFToken(r *http.Request) string {
	return GetSession(r).CSRFToken
}

// rejectCSRF answers 403; htmx requests get a JSON error body.
func rejectCSRF(w http.ResponseWriter, r *http.Request) {
	const msg = "invalid CSRF token"
	if !IsHTMX(r.Context()) {
		http.Error(w, msg, http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
