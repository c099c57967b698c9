package adapthttp

import (
	"net/http"

	"studentbook/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	students    *app.StudentService
	auth        *app.AuthService
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(students *app.StudentService, auth *app.AuthService, oidcConfig OIDCConfig, webDir string) *Server {
	return &Server{students: students, auth: auth, oidcConfig: oidcConfig, webDir: webDir}
}

// WithoutAuth disables the authentication guard. Only for tests.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)

	guard := s.authMiddleware
	api.Handle("/auth/logout", guard(http.HandlerFunc(s.handleLogout)))
	api.Handle("/auth/me", guard(http.HandlerFunc(s.handleMe)))
	api.Handle("/students", guard(http.HandlerFunc(s.handleStudents)))
	api.Handle("/students/", guard(http.HandlerFunc(s.handleStudentByRoll)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	root.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	root.Handle("/", s.pageGuard(spaFromDisk(s.webDir)))

	return s.loggingMiddleware(withNoCache(root))
}
