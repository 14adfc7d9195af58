package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmwangi/parishledger/internal/auth"
	"github.com/jmwangi/parishledger/internal/handler"
	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/router"
	"github.com/jmwangi/parishledger/internal/service"
	"github.com/jmwangi/parishledger/internal/storage"
	"github.com/jmwangi/parishledger/internal/storage/sqlite"
	"github.com/jmwangi/parishledger/pkg/logging"
)

const defaultPort = "8080"

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	_ = godotenv.Load()
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/parish.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	if err := seedStaff(store, authenticator); err != nil {
		slog.Error("Failed to seed staff account", "error", err)
		os.Exit(1)
	}

	duesService := service.NewDuesService(store)

	h := router.New(
		handler.NewAuthHandler(authenticator, jwtManager, store),
		handler.NewMemberHandler(store),
		handler.NewPaymentHandler(store),
		handler.NewDuesHandler(duesService),
		jwtManager,
	)

	addr := fmt.Sprintf(":%s", getEnv("PORT", defaultPort))
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// seedStaff creates the initial staff account from STAFF_EMAIL and
// STAFF_PASSWORD if it does not exist yet. Registration over HTTP only
// ever creates plain members, so without this there would be no way to
// record payments.
func seedStaff(store storage.Store, authenticator auth.Authenticator) error {
	email := os.Getenv("STAFF_EMAIL")
	password := os.Getenv("STAFF_PASSWORD")
	if email == "" || password == "" {
		slog.Warn("STAFF_EMAIL/STAFF_PASSWORD not set, skipping staff seed")
		return nil
	}

	ctx := context.Background()
	if existing, err := store.GetMemberByEmail(ctx, email); err == nil && existing != nil {
		return nil
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	member := &models.Member{
		Email: email,
		Name:  getEnv("STAFF_NAME", "Parish Office"),
		Role:  models.RoleStaff,
	}
	if _, err := authenticator.Register(ctx, member, password); err != nil {
		return err
	}
	slog.Info("Staff account seeded", "email", email)
	return nil
}
