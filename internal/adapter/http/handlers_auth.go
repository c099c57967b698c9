// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"studentbook/internal/app"
)

const sessionCookieName = "session"

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Re-registering while logged in just sends the client back to the list.
	if s.currentUser(r) != nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "already-authenticated", "next": "/students"})
		return
	}

	var form app.RegistrationForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.auth.Register(r.Context(), &form); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status":   "ok",
		"message":  "Your account has been created! You are now able to log in.",
		"category": "success",
		"next":     "/login",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.currentUser(r) != nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "already-authenticated", "next": "/students"})
		return
	}

	var form app.LoginForm
	if err := parseJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := form.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := s.auth.Login(r.Context(), form.Username, form.Password, form.Remember)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.setSessionCookie(w, r, token, form.Remember)

	next := safeNext(r.URL.Query().Get("next"), "/students")
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"message":  "Login successful!",
		"category": "success",
		"next":     next,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		_ = s.auth.Logout(r.Context(), cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"message":  "You have been logged out.",
		"category": "info",
		"next":     "/",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": UserFromContext(r.Context())})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sso_enabled": s.oidcConfig.Enabled,
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, token string, remember bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(app.SessionTTL(remember).Seconds()),
	})
}
