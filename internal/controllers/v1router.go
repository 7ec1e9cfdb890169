package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hoteldesk/hoteldesk/internal/middlewares"
	"github.com/hoteldesk/hoteldesk/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	// Health reports storage health; nil always reports ok.
	Health func(ctx context.Context) error
	// RoomFeed serves the live room event stream; nil disables /ws/rooms.
	RoomFeed       http.Handler
	AllowedOrigins []string
}

func NewV1Router(roomService services.RoomService, opts RouterOptions) http.Handler {
	router := chi.NewRouter()

	router.Use(middlewares.PanicRecovery)
	router.Use(middlewares.LoggingMiddleware)
	router.Use(middlewares.MetricsMiddleware)
	router.Use(middlewares.NewCORS(opts.AllowedOrigins))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if opts.Health != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Health(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Handle("/metrics", promhttp.Handler())

	if opts.RoomFeed != nil {
		router.Handle("/ws/rooms", opts.RoomFeed)
	}

	router.Route("/api/v1", func(r chi.Router) {
		NewRoomController(roomService).RegisterRoutes(r)
	})

	return router
}
