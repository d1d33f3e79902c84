package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/scanner"
	"github.com/mmynk/tabsplit/internal/server"
	"github.com/mmynk/tabsplit/internal/service"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
	"github.com/mmynk/tabsplit/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/bills.db")
	port := getEnv("PORT", "8080")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	hub := notify.NewHub()
	defer hub.Close()

	// Receipt scanning needs an API key; without one the endpoint reports
	// itself unavailable and clients enter items manually.
	var sc scanner.Scanner
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		sc = scanner.NewAnthropicScanner(apiKey, os.Getenv("ANTHROPIC_MODEL"))
		slog.Info("Receipt scanner enabled")
	} else {
		slog.Warn("ANTHROPIC_API_KEY not set, receipt scanning disabled")
	}

	svc := service.NewBillService(store, hub)
	router := server.New(svc, sc).Router()

	// h2c lets browsers multiplex the SSE feed and API calls over a single
	// cleartext HTTP/2 connection behind a terminating proxy.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
