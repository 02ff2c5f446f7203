// lccs-mockws — локальный in-memory LCCS-WS для ручной проверки CLI.
//
// Переменные окружения:
//
//	MOCKWS_PORT          порт (по умолчанию 5000)
//	MOCKWS_ACCESS_TOKEN  токен в заголовке x-api-key; пусто — без проверки
//	MOCKWS_EMPTY         "true" — не заполнять демонстрационными данными
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/lccs/internal/mockws"
	"github.com/shaiso/lccs/internal/telemetry"
)

var (
	startTime    = time.Now()
	healthChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lccs_mockws_health_checks_total",
		Help: "Total health checks handled by lccs-mockws",
	})
)

func main() {
	logger := telemetry.SetupLogger(os.Stdout)
	logger.Info("starting lccs-mockws")

	store := mockws.NewStore()
	if os.Getenv("MOCKWS_EMPTY") != "true" {
		if err := mockws.Seed(store); err != nil {
			logger.Error("failed to seed store", "error", err)
			os.Exit(1)
		}
		logger.Info("store seeded", "systems", len(store.Systems()))
	}

	handler := mockws.NewHandler(mockws.Config{
		Store:       store,
		Logger:      logger,
		AccessToken: os.Getenv("MOCKWS_ACCESS_TOKEN"),
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		healthChecks.Inc()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	handler.RegisterRoutes(mux)

	addr := ":5000"
	if v := os.Getenv("MOCKWS_PORT"); v != "" {
		addr = ":" + v
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
