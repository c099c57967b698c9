package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"studentbook/internal/app"
	"studentbook/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeServiceError translates application errors to HTTP responses.
// Unexpected failures surface as a generic 500; no store detail leaves the
// server.
func writeServiceError(w http.ResponseWriter, err error) {
	var fieldErrs app.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fieldErrs})
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, app.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrStudentNotFound):
		writeError(w, http.StatusNotFound, domain.ErrStudentNotFound.Error())
	case errors.Is(err, domain.ErrRollTaken):
		writeError(w, http.StatusConflict, domain.ErrRollTaken.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		writeError(w, http.StatusConflict, domain.ErrUsernameTaken.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// safeNext returns target if it is a local path suitable for a post-login
// redirect, otherwise the fallback. Anything that could leave the site
// ("//evil" or a full URL) is rejected.
func safeNext(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func spaFromDisk(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := path.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqPath := path.Clean(r.URL.Path)
		if reqPath == "/" {
			http.ServeFile(w, r, indexPath)
			return
		}

		staticPath := path.Join(dir, reqPath)
		if _, err := os.Stat(staticPath); err == nil {
			fileServer.ServeHTTP(w, r)
			return
		}

		// Page routes (/login, /students, ...) fall through to their html.
		htmlPath := staticPath + ".html"
		if _, err := os.Stat(htmlPath); err == nil {
			http.ServeFile(w, r, htmlPath)
			return
		}

		http.ServeFile(w, r, indexPath)
	})
}
