/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the bank ledger server. Handles configuration,
  seed selection, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (flags override environment)
  2. Resolve the initial snapshot: JSON file, then SQLite, then scenario
  3. Build the ledger and instrumentation recorder
  4. Configure HTTP router
  5. Start server with graceful shutdown

SNAPSHOT SOURCES (first match wins):
  - BANK_SNAPSHOT / -snapshot: canonical JSON snapshot file
  - BANK_SQLITE / -db: SQLite database (used if it holds any customers)
  - BANK_SCENARIO / -scenario: built-in seed scenario (default: retail)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Persist the final snapshot (unless BANK_SAVE_ON_EXIT=false)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Seed from a scenario, persist to SQLite on exit
  ./server -scenario=retail -db=./data/bank.db

  # Resume from a snapshot file
  ./server -snapshot=./data/snapshot.json

SEE ALSO:
  - config/config.go: Environment configuration
  - api/server.go: Router configuration
  - scenario/scenario.go: Built-in seeds
*/
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/warp/bank-ledger/api"
	"github.com/warp/bank-ledger/bank"
	"github.com/warp/bank-ledger/config"
	"github.com/warp/bank-ledger/instrument"
	"github.com/warp/bank-ledger/scenario"
	"github.com/warp/bank-ledger/store/jsonfile"
	"github.com/warp/bank-ledger/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override environment.
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "JSON snapshot file path")
	flag.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "SQLite database path")
	flag.StringVar(&cfg.Scenario, "scenario", cfg.Scenario,
		"seed scenario ("+strings.Join(scenario.List(), ", ")+")")
	flag.BoolVar(&cfg.SaveOnExit, "save-on-exit", cfg.SaveOnExit, "persist snapshot on shutdown")
	flag.Parse()

	// Optional SQLite store, used for loading and for save-on-exit.
	var db *sqlite.Store
	if cfg.SQLitePath != "" {
		var err error
		db, err = sqlite.New(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
	}

	snap, source := resolveSnapshot(cfg, db)
	log.Printf("Seeded ledger from %s", source)

	clock := bank.SystemClock()
	ledger := bank.NewLedger(bank.LoadSnapshot(snap), clock)
	recorder := instrument.NewRecorder(clock)
	handler := api.NewHandler(ledger, recorder, clock)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", cfg.Addr)
		log.Printf("📊 API available at http://localhost%s/api", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if cfg.SaveOnExit {
		saveSnapshot(ctx, cfg, db, handler)
	}

	log.Println("Server stopped")
}

// resolveSnapshot picks the initial ledger state: snapshot file first,
// then a non-empty SQLite database, then the named scenario.
func resolveSnapshot(cfg config.Config, db *sqlite.Store) (*bank.Snapshot, string) {
	if cfg.SnapshotPath != "" {
		snap, err := jsonfile.Load(cfg.SnapshotPath)
		if err == nil {
			return snap, "snapshot file " + cfg.SnapshotPath
		}
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Failed to load snapshot %s: %v", cfg.SnapshotPath, err)
		}
		log.Printf("Snapshot file %s not found, trying other sources", cfg.SnapshotPath)
	}

	if db != nil {
		snap, err := db.LoadSnapshot(context.Background())
		if err != nil {
			log.Fatalf("Failed to load database snapshot: %v", err)
		}
		if len(snap.Customers) > 0 {
			return snap, "database " + cfg.SQLitePath
		}
	}

	snap := scenario.ByName(cfg.Scenario)
	if snap == nil {
		log.Fatalf("Unknown scenario %q (have: %s)", cfg.Scenario, strings.Join(scenario.List(), ", "))
	}
	return snap, "scenario " + cfg.Scenario
}

// saveSnapshot persists the final ledger state to every configured sink.
func saveSnapshot(ctx context.Context, cfg config.Config, db *sqlite.Store, handler *api.Handler) {
	snap := handler.Ledger().Snapshot()

	if cfg.SnapshotPath != "" {
		if err := jsonfile.Save(cfg.SnapshotPath, snap); err != nil {
			log.Printf("Warning: failed to save snapshot file: %v", err)
		} else {
			log.Printf("Snapshot saved to %s", cfg.SnapshotPath)
		}
	}
	if db != nil {
		if err := db.SaveSnapshot(ctx, snap); err != nil {
			log.Printf("Warning: failed to save database snapshot: %v", err)
		} else {
			log.Printf("Snapshot saved to %s", cfg.SQLitePath)
		}
	}
}
