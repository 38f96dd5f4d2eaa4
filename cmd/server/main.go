package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"riskgate/internal/advice"
	"riskgate/internal/auditor"
	auditorhandler "riskgate/internal/auditor/handler"
	"riskgate/internal/customer"
	customerhandler "riskgate/internal/customer/handler"
	httpapi "riskgate/internal/http"
	"riskgate/internal/jwttoken"
	"riskgate/internal/notify"
	"riskgate/internal/platform/config"
	"riskgate/internal/platform/httpserver"
	"riskgate/internal/platform/logger"
	"riskgate/internal/platform/metrics"
	"riskgate/internal/risk"
	"riskgate/internal/trail"
	workflowhandler "riskgate/internal/workflow/handler"
	wfmetrics "riskgate/internal/workflow/metrics"
	"riskgate/internal/workflow/service"
	"riskgate/internal/workflow/store/cases"
)

// main wires the stores, the workflow engine and the HTTP surface, then
// runs the server until interrupted. Business logic lives in the internal
// feature packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		caseStore     service.CaseStore
		trailStore    trail.Store
		auditorStore  auditor.Store
		customerStore customer.Store
	)
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		caseStore = cases.NewPostgres(pool)
		trailStore = trail.NewPostgres(pool)
		auditorStore = auditor.NewPostgres(pool)
		customerStore = customer.NewPostgres(pool)
		log.Info("using postgres storage")
	} else {
		caseStore = cases.NewInMemoryStore()
		trailStore = trail.NewInMemoryStore()
		auditorStore = auditor.NewInMemoryStore()
		customerStore = customer.NewInMemoryStore()
		log.Info("using in-memory storage")
	}

	processMetrics := metrics.New()
	workflowMetrics := wfmetrics.New()

	auditorService := auditor.NewService(auditorStore, log)
	if cfg.SeedPassword != "" {
		if err := auditor.SeedDefaults(ctx, auditorService, cfg.SeedPassword); err != nil {
			log.Error("failed to seed auditors", "error", err)
			os.Exit(1)
		}
		log.Info("seeded default auditor pool")
	}

	notifyStore := notify.NewInMemoryStore()
	dispatcher := notify.NewDispatcher(notifyStore, 256, log)

	engine := service.NewEngine(caseStore, trailStore, auditorService, workflowMetrics, log)
	customerService := customer.NewService(customerStore, risk.NewEngine(), advice.NewAdvisor(), engine, processMetrics, log)
	// Case resolutions fan out to the customer status flip and the
	// notification feed.
	engine.RegisterNotifier(customerService)
	engine.RegisterNotifier(dispatcher)

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)

	auditorHandler := auditorhandler.New(auditorService, tokens, log)
	router := httpapi.NewRouter(tokens, processMetrics, log,
		[]httpapi.Registrar{
			customerhandler.New(customerService, notifyStore, log),
			auditorHandler,
		},
		[]httpapi.ProtectedRegistrar{
			auditorHandler,
			workflowhandler.New(engine, customerService, log),
		},
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("notification dispatcher stopped", "error", err)
		}
	}()

	go func() {
		log.Info("starting riskgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
