package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	adapthttp "studentbook/internal/adapter/http"
	"studentbook/internal/adapter/memory"
	"studentbook/internal/adapter/postgres"
	"studentbook/internal/app"
	"studentbook/internal/domain"
)

func main() {
	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	var (
		users    domain.UserRepository
		sessions domain.SessionRepository
		students domain.StudentRepository
	)

	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		users = db
		sessions = postgres.NewSessionRepo(db)
		students = postgres.NewStudentRepo(db)
	} else {
		log.Print("DATABASE_URL not set, using in-memory store")
		db := memory.New()
		users = db
		sessions = db.NewSessionRepo()
		students = db.NewStudentRepo()
	}

	authSvc := app.NewAuthService(users, sessions)
	studentSvc := app.NewStudentService(students)

	var oidcConfig adapthttp.OIDCConfig
	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		cfg, err := adapthttp.NewOIDCConfig(context.Background(), issuer,
			os.Getenv("OIDC_CLIENT_ID"), os.Getenv("OIDC_CLIENT_SECRET"),
			os.Getenv("OIDC_REDIRECT_URL"))
		if err != nil {
			log.Fatalf("oidc setup: %v", err)
		}
		oidcConfig = cfg
	}

	go sweepSessions(sessions)

	h := adapthttp.New(studentSvc, authSvc, oidcConfig, webDir).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// sweepSessions clears expired sessions once an hour.
func sweepSessions(sessions domain.SessionRepository) {
	for range time.Tick(time.Hour) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := sessions.DeleteExpired(ctx); err != nil {
			log.Printf("session sweep: %v", err)
		}
		cancel()
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
