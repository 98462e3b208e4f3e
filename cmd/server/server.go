// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/api"
	"github.com/hmzza/NoballSportsClub/internal/api/admin"
	"github.com/hmzza/NoballSportsClub/internal/api/auth"
	"github.com/hmzza/NoballSportsClub/internal/api/bookingflow"
	"github.com/hmzza/NoballSportsClub/internal/backend"
	"github.com/hmzza/NoballSportsClub/internal/config"
	"github.com/hmzza/NoballSportsClub/internal/metrics"
	"github.com/hmzza/NoballSportsClub/internal/stats"
)

func newServer(cfg *config.Config) (*http.Server, error) {
	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout())

	poller := stats.NewPoller(client, cfg.Stats.RefreshInterval())
	if err := poller.Register(); err != nil {
		return nil, fmt.Errorf("registering stats refresh: %w", err)
	}

	sessions := auth.InitHandlers(cfg)
	bookingflow.InitHandlers(client)
	admin.InitHandlers(client, poller)

	router := http.NewServeMux()
	registerRoutes(router, sessions, cfg)

	// Setup middleware chain
	middleware := []api.Middleware{
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	}
	if cfg.Features.EnableMetrics {
		collector := metrics.New(cfg.App.Name)
		middleware = append([]api.Middleware{collector.Middleware}, middleware...)
	}
	handler := api.ChainMiddleware(router, middleware...)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

func registerRoutes(mux *http.ServeMux, sessions *auth.Store, cfg *config.Config) {
	// Customer booking flow
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/booking", http.StatusSeeOther)
	})
	mux.HandleFunc("/booking", bookingflow.HandleBookingPage)
	mux.HandleFunc("POST /api/time-slots", bookingflow.HandleTimeSlots)
	mux.HandleFunc("POST /api/selection/toggle", bookingflow.HandleSelectionToggle)
	mux.HandleFunc("POST /api/create-booking", bookingflow.HandleCreateBooking)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Admin login stays outside the session gate
	mux.HandleFunc("GET /admin/login", auth.HandleLoginPage)
	mux.HandleFunc("POST /admin/login", auth.HandleLogin)
	mux.HandleFunc("/admin/logout", auth.HandleLogout)

	// Admin console
	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET /admin/dashboard", admin.HandleDashboardPage)
	adminMux.HandleFunc("GET /admin/api/dashboard-stats", admin.HandleDashboardStats)
	adminMux.HandleFunc("POST /admin/api/dashboard-visibility", admin.HandleVisibility)
	adminMux.HandleFunc("POST /admin/api/export-bookings", admin.HandleExport)
	adminMux.HandleFunc("GET /admin/schedule", admin.HandleSchedulePage)
	adminMux.HandleFunc("GET /admin/schedule/grid", admin.HandleScheduleGrid)
	adminMux.HandleFunc("POST /admin/api/schedule-data", admin.HandleScheduleData)
	adminMux.HandleFunc("POST /admin/api/admin-create-booking", admin.HandleQuickBook)
	adminMux.HandleFunc("GET /admin/booking-control", admin.HandleBookingControlPage)
	adminMux.HandleFunc("POST /admin/api/search-bookings", admin.HandleSearch)
	adminMux.HandleFunc("POST /admin/api/update-booking", admin.HandleUpdate)
	adminMux.HandleFunc("POST /admin/api/admin-booking-action", admin.HandleAction)
	adminMux.HandleFunc("POST /admin/api/delete-booking", admin.HandleDelete)
	adminMux.HandleFunc("POST /admin/api/bulk-bookings", admin.HandleBulkList)
	adminMux.HandleFunc("POST /admin/api/bulk-action", admin.HandleBulkAction)
	mux.Handle("/admin/", api.WithAdminAuth(sessions)(adminMux))

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
