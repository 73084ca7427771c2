package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"promoback/internal/domain/accounting"
	"promoback/internal/domain/contact"
	"promoback/internal/domain/org"
	"promoback/internal/domain/payroll"
	"promoback/internal/domain/promoter"
	"promoback/internal/domain/reports"
	"promoback/internal/domain/shift"
	"promoback/internal/platform/codes"
	"promoback/internal/platform/config"
	"promoback/internal/platform/db"
	"promoback/internal/platform/jobs"
	"promoback/internal/platform/metrics"
	"promoback/internal/sink"
	"promoback/internal/transport/http/middleware"

	accountinghandler "promoback/internal/transport/http/handlers/accounting"
	adminhandler "promoback/internal/transport/http/handlers/admin"
	authhandler "promoback/internal/transport/http/handlers/auth"
	contactshandler "promoback/internal/transport/http/handlers/contacts"
	orgshandler "promoback/internal/transport/http/handlers/orgs"
	promotershandler "promoback/internal/transport/http/handlers/promoters"
	reportshandler "promoback/internal/transport/http/handlers/reports"
	shiftshandler "promoback/internal/transport/http/handlers/shifts"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if err := db.Seed(ctx, pool, cfg); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	var stats *metrics.Collector
	if cfg.MetricsEnabled {
		stats = metrics.New()
	}

	runner := jobs.New(cfg.SinkQueueSize, stats)
	runner.Start(ctx)

	relay := sink.NewChannelRelay(cfg)
	mirror := sink.NewSheetMirror(cfg)
	storage := sink.NewObjectStore(cfg)
	codeStore := codes.New(cfg)

	promoterStore := promoter.NewStore(pool)
	approval := promoter.NewService(pool)
	orgStore := org.NewStore(pool)
	contactStore := contact.NewStore(pool)
	shiftStore := shift.NewStore(pool)
	editor := shift.NewEditor(pool)
	accountingStore := accounting.NewStore(pool)
	payrollService := payroll.NewService(shiftStore, contactStore, orgStore)
	reportsService := reports.NewService(pool, orgStore, payrollService)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(stats))
	router.Use(middleware.Recoverer)
	router.Use(middleware.CORS)
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	router.Use(middleware.Auth(promoterStore))

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

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(promoterStore, codeStore, relay, runner, cfg).RegisterRoutes(r)
		promotershandler.NewHandler(promoterStore, approval, storage, runner).RegisterRoutes(r)
		orgshandler.NewHandler(orgStore).RegisterRoutes(r)
		shiftshandler.NewHandler(shiftStore, editor, contactStore, relay, storage, runner).RegisterRoutes(r)
		contactshandler.NewHandler(contactStore).RegisterRoutes(r)
		accountinghandler.NewHandler(accountingStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, payrollService, promoterStore, orgStore, mirror, runner).RegisterRoutes(r)
		adminhandler.NewHandler(stats, promoterStore).RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        http.MaxBytesHandler(router, cfg.MaxBodyBytes),
		ReadTimeout:    time.Minute,
		WriteTimeout:   2 * time.Minute,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("server listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
