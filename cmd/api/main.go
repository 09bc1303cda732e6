// Command server runs the A/B-test analytics HTTP surface described in
// ui.NewServer: /analyze, /aggregate-transactions, /calculate-overview,
// /calculate-revenue, /validate-data, /create-analysis, and /health.
package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/joho/godotenv"

	"abtest-analytics/adapters/auditlog"
	"abtest-analytics/internal/config"
	"abtest-analytics/internal/statkernel"
	"abtest-analytics/ports"
	"abtest-analytics/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[main] no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load configuration: %v", err)
	}

	audit, err := auditlog.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("[main] failed to connect audit log: %v", err)
	}

	if cfg.Profiling.Enabled {
		go func() {
			log.Printf("[main] starting pprof listener on port %s", cfg.Profiling.Port)
			if err := http.ListenAndServe(":"+cfg.Profiling.Port, nil); err != nil {
				log.Printf("[main] pprof listener stopped: %v", err)
			}
		}()
	}

	server := ui.NewServer(ui.Config{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		BootstrapConfig: statkernel.BootstrapConfig{
			Replicates:      cfg.Bootstrap.Replicates,
			Seed:            cfg.Bootstrap.Seed,
			SeedFromEntropy: cfg.Bootstrap.SeedFromEntropy,
		},
		TotalRevenueCIMethod: cfg.Bootstrap.TotalRevenueCI,
		RNGSource:            ports.NewRNGSource(),
		AuditRecorder:        audit,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[main] starting analytics server on port %s", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[main] server failed: %v", err)
	}
}
