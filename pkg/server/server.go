package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/biz-tools/biz-atlas/pkg/handlers/reports"
	bizatlasmiddleware "github.com/biz-tools/biz-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Reporting handlers.ReportingService
	Periods   handlers.PeriodResolver
	Assistant handlers.Assistant
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	handler := handlers.NewHandler(
		config.Dependencies.Reporting,
		config.Dependencies.Periods,
		config.Dependencies.Assistant,
	)

	router := chi.NewRouter()
	router.Use(bizatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", handler.Dashboard)
			r.Post("/generate", handler.GenerateReport)
			r.Get("/", handler.ListReports)
			r.Get("/{reportID}", handler.GetReport)
			r.Delete("/{reportID}", handler.DeleteReport)
		})
		r.Get("/metrics/financial", handler.FinancialMetrics)
		r.Get("/metrics/sales", handler.SalesMetrics)
		r.Get("/metrics/customers", handler.CustomerMetrics)
		r.Get("/charts/{chartType}", handler.ChartData)
		r.Get("/kpis", handler.KPIMetrics)
		r.Post("/assistant/query", handler.AssistantQuery)
	})

	return router
}

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: config.ShutdownTimeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: ConfigureRouter(config),
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
