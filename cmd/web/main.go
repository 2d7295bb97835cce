// cmd/web/main.go
//
// Luvora – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config (koanf overlays), resolving vault: references when any
//     are present.
//
//  4. Open the engagement/audit DB when a DSN is configured; the service
//     runs read-only without one.
//
//  5. Eagerly load the message pool and log its version and bucket
//     counts as an early sanity check.
//
//  6. Expose the Prometheus /metrics endpoint.
//
//  7. Build the API router and wrap it with Security headers and, when
//     configured, ForceHTTPS.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luvora/luvora/internal/config"
	"github.com/luvora/luvora/internal/database"
	"github.com/luvora/luvora/internal/logger"
	"github.com/luvora/luvora/internal/metrics"
	"github.com/luvora/luvora/internal/middleware"
	"github.com/luvora/luvora/internal/pool"
	"github.com/luvora/luvora/internal/requestinfo"
	"github.com/luvora/luvora/internal/server"
	"github.com/luvora/luvora/internal/vault"
	"github.com/luvora/luvora/internal/web"
)

const serverEnvPath = "/usr/local/etc/luvora/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	if cfg.HasSecretRefs() {
		cli, err := vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		if err := cfg.ResolveSecrets(ctx, cli); err != nil {
			logOut.Fatalf("resolve secrets: %v", err)
		}
		logOut.Infow("vault secrets resolved")
	}

	//
	// ── 2.  Engagement/audit DB (optional) ──────────────────────────────
	//
	var db *sqlx.DB
	if cfg.Database.DSN != "" {
		logOut.Infow("connecting to engagement DB …")
		db, err = database.Open(cfg.Database.BuildDSN())
		if err != nil {
			logOut.Fatalf("connect engagement DB: %v", err)
		}
		defer db.Close()
		logOut.Infow("engagement DB online")
	} else {
		logOut.Warnw("no database DSN – running read-only")
	}

	//
	// ── 3.  Message pool (eager load, fail fast) ────────────────────────
	//
	store := pool.NewStore(cfg.Pool.Path)
	p, err := store.Get()
	if err != nil {
		metrics.PoolLoadErrorsTotal.Inc()
		logOut.Fatalf("load pool: %v", err)
	}
	metrics.PoolVersion.Set(float64(p.Version))
	logOut.Infow("pool online", "version", p.Version, "counts", p.Counts())

	//
	// ── 4.  Optional GeoLite2 enrichment ────────────────────────────────
	//
	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			logOut.Warnw("geo DB unavailable – continuing without", "err", err)
		}
	}

	//
	// ── 5.  Metrics endpoint ────────────────────────────────────────────
	//
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	//
	// ── 6.  API router, hardened ────────────────────────────────────────
	//
	api := web.New(store, db)
	var root http.Handler = middleware.Security(api.Router())
	if cfg.HTTP.ForceHTTPS {
		root = middleware.ForceHTTPS(root)
	}
	mux.Handle("/", root)

	srv := server.New(cfg.HTTP.ListenAddr, mux)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
}
