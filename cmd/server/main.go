/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Van Slyke derivation server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Create API handler with dependencies
     (optionally seeding the demo presets)
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: vanslyke.db)
           Use ":memory:" for an in-memory SQLite database, or "" for the
           plain in-memory store
  -presets Save the demo presets as scenarios at startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/vanslyke.db"

  # Run with in-memory database and demo scenarios
  ./server -db=":memory:" -presets

  # Run on different port
  ./server -port=3000

ENVIRONMENT:
  No environment variables. All config via flags.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/vanslyke/api"
	"github.com/warp/vanslyke/generic"
	memstore "github.com/warp/vanslyke/generic/store"
	"github.com/warp/vanslyke/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "vanslyke.db", "SQLite database path")
	seed := flag.Bool("presets", false, "Save the demo presets as scenarios")
	flag.Parse()

	// Initialize store
	var store generic.ScenarioStore
	if *dbPath == "" {
		log.Printf("No -db given, scenarios are kept in memory")
		store = memstore.NewMemory()
	} else {
		db, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		store = db
	}

	// Initialize handler
	handler := api.NewHandler(store)

	if *seed {
		loaded, err := handler.SeedPresets(context.Background(), nil)
		if err != nil {
			log.Printf("Warning: Failed to seed presets: %v", err)
		} else {
			log.Printf("Seeded %d preset scenarios", len(loaded))
		}
	}

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api, metrics at /metrics", *port)
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

	log.Println("Server stopped")
}
