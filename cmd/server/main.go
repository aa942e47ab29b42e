package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"finiquitos/internal/db"
	"finiquitos/internal/domain/audit"
	"finiquitos/internal/domain/documents"
	"finiquitos/internal/domain/finiquito"
	"finiquitos/internal/platform/config"
	cryptoutil "finiquitos/internal/platform/crypto"
	"finiquitos/internal/platform/metrics"
	finiquitohandler "finiquitos/internal/transport/http/handlers/finiquito"
	"finiquitos/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	cryptoSvc, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		log.Fatalf("crypto init failed: %v", err)
	}

	store := finiquito.NewStore(pool)
	calculator := finiquito.NewCalculator(finiquito.DefaultLaborConstants())
	docs := documents.NewService(cfg.DocumentsDir, cryptoSvc)
	trail := audit.New(pool)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
			log.Printf("metrics encode failed: %v", err)
		}
	})

	router.Route("/api/v1", func(r chi.Router) {
		handler := finiquitohandler.NewHandler(store, calculator, docs, trail)
		handler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           http.MaxBytesHandler(router, cfg.MaxBodyBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("finiquitos server listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
