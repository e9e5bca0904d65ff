package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jdsingh122918/steamboat-sub004/internal/api"
	"github.com/jdsingh122918/steamboat-sub004/internal/auth"
	"github.com/jdsingh122918/steamboat-sub004/internal/optimizer"
	"github.com/jdsingh122918/steamboat-sub004/internal/service"
	"github.com/jdsingh122918/steamboat-sub004/internal/storage/sqlite"
	"github.com/jdsingh122918/steamboat-sub004/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "./data/tripledger.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
		slog.Warn("JWT_SECRET not set, using insecure development secret")
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager)
	tripSvc := service.NewTripService(store)
	expenseSvc := service.NewExpenseService(store)
	ledgerSvc := service.NewLedgerService(store, optimizer.New())

	handler := api.New(authSvc, tripSvc, expenseSvc, ledgerSvc, jwtManager).Router()

	// h2c enables HTTP/2 without TLS for clients that want it; plain
	// HTTP/1.1 keeps working.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
