package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"finsight/internal/adapters/datanewton"
	httpadapter "finsight/internal/adapters/http"
	pg "finsight/internal/adapters/postgres"
	"finsight/internal/adapters/rusprofile"
	"finsight/internal/config"
	"finsight/internal/ports"
	analysissvc "finsight/internal/services/analysis"
	analyticssvc "finsight/internal/services/analytics"
	companysvc "finsight/internal/services/companies"
	"finsight/internal/workers/reportsync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for Postgres adapters")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := pg.Connect(ctx, cfg.DatabaseURL, pg.PoolSettings{
		MaxConns:          int32(cfg.DBMaxConns),
		HealthCheckPeriod: time.Duration(cfg.DBHealthCheckSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	// Wire repositories to services (ports)
	var _ ports.CompanyRepository = db
	var _ ports.ReportRepository = db
	var _ ports.RefreshJobRepository = db

	primary := datanewton.New(cfg.DataNewtonBaseURL, cfg.DataNewtonAPIKey)
	secondary := rusprofile.New(cfg.RusProfileBaseURL)

	companies := companysvc.New(db, primary, secondary)
	analytics := analyticssvc.New(db, db, db, primary, secondary)

	modelCfg, err := analysissvc.LoadModelConfig(cfg.AnalysisConfigPath)
	if err != nil {
		log.Printf("analysis config: %v", err)
	}
	analyzer := analysissvc.New(cfg.GeminiAPIKey, modelCfg, analytics)

	srv := httpadapter.New(companies, analytics, analyzer)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	// Optional background report sync workers
	if cfg.SyncWorkers > 0 {
		processor := reportsync.FinanceProcessor{Provider: primary, Reports: db}
		go reportsync.Run(ctx, db, processor, cfg.SyncWorkers, 500*time.Millisecond)
		log.Printf("report sync workers started: %d", cfg.SyncWorkers)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, r) }()
	log.Printf("listening on %s", cfg.ListenAddr)

	// graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutting down on %s", sig)
		cancel()
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.Fatal(fmt.Errorf("server error: %w", err))
	}
}
