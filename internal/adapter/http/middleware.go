package adapthttp

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studentbook/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user attached to the request
// context by the auth middleware, or nil.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

// authMiddleware admits only requests carrying a valid session cookie and
// attaches the resolved user to the request context. API callers get a plain
// 401; the guarded operation is never reached.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth if disabled (for tests)
		if s.disableAuth {
			next.ServeHTTP(w, r)
			return
		}

		user := s.currentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// pageGuard applies the login redirect rules to browser page navigation:
// protected pages bounce anonymous visitors to /login carrying the original
// destination in ?next=, and the login/register pages bounce authenticated
// visitors straight to the student list.
func (s *Server) pageGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.disableAuth {
			next.ServeHTTP(w, r)
			return
		}

		user := s.currentUser(r)
		p := r.URL.Path

		if p == "/login" || p == "/register" {
			if user != nil {
				http.Redirect(w, r, "/students", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if protectedPage(p) && user == nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func protectedPage(p string) bool {
	return p == "/students" || strings.HasPrefix(p, "/students/")
}

// currentUser resolves the session cookie to a user, or nil.
func (s *Server) currentUser(r *http.Request) *domain.User {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	user, err := s.auth.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs method, path, status and duration for every request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
