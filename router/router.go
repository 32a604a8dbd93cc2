// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/qbank-api/cliparse"
	"github.com/danielhkuo/qbank-api/handlers"
	"github.com/danielhkuo/qbank-api/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)
	statsHandler := handlers.NewStatsHandler(db, cfg)
	favHandler := handlers.NewFavoriteHandler(db, cfg)
	batchHandler := handlers.NewBatchHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Account + progress sync (the action query param selects the operation)
	mux.HandleFunc("POST /api/user", middleware.WithLogging(userHandler.Handle))
	mux.HandleFunc("GET /api/user", middleware.WithLogging(userHandler.Handle))

	// Per-question comments
	mux.HandleFunc("GET /api/comments", middleware.WithLogging(commentHandler.List))
	mux.HandleFunc("POST /api/comments", middleware.WithLogging(commentHandler.Post))
	mux.HandleFunc("PUT /api/comments", middleware.WithLogging(commentHandler.Edit))

	// Per-question counters
	mux.HandleFunc("POST /api/stats", middleware.WithLogging(statsHandler.Record))
	mux.HandleFunc("POST /api/fav", middleware.WithLogging(favHandler.Toggle))

	// Batched stat lookups
	mux.HandleFunc("POST /api/batch-info", middleware.WithLogging(batchHandler.Info))
	mux.HandleFunc("POST /api/fav-batch", middleware.WithLogging(batchHandler.Favorites))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("qbank API v1"))
	})

	// The user endpoint is pinned to the configured origin; everything else
	// answers any origin
	originFor := func(r *http.Request) string {
		if r.URL.Path == "/api/user" {
			return cfg.UserOrigin
		}
		return "*"
	}

	return middleware.CORS(originFor, mux)
}
