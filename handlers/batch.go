// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"math"
	"net/http"

	"github.com/danielhkuo/qbank-api/cliparse"
	"github.com/danielhkuo/qbank-api/db"
	"github.com/danielhkuo/qbank-api/middleware"
	"github.com/danielhkuo/qbank-api/models"
)

type BatchHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBatchHandler(database *sql.DB, cfg cliparse.Config) *BatchHandler {
	return &BatchHandler{db: database, cfg: cfg}
}

// Info handles POST /api/batch-info
// Maps each requested question ID with a stats row to {rate, total, fav}.
// An empty or absent id list is a valid request with an empty result.
func (h *BatchHandler) Info(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.IDs) == 0 {
		middleware.JSONResponse(w, http.StatusOK, map[string]models.QuestionInfo{})
		return
	}

	stats, err := db.StatsByQuestionIDs(h.db, req.IDs)
	if err != nil {
		slog.Error("failed to query batch stats", "error", err, "ids", len(req.IDs))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	info := make(map[string]models.QuestionInfo, len(stats))
	for _, s := range stats {
		rate := 0
		if s.TotalCount > 0 {
			rate = int(math.Round(float64(s.CorrectCount) / float64(s.TotalCount) * 100))
		}
		info[s.QuestionID] = models.QuestionInfo{
			Rate:  rate,
			Total: s.TotalCount,
			Fav:   s.FavCount,
		}
	}

	middleware.JSONResponse(w, http.StatusOK, info)
}

// Favorites handles POST /api/fav-batch
// Maps each requested question ID with a stats row to its raw favorite count.
func (h *BatchHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.IDs) == 0 {
		middleware.JSONResponse(w, http.StatusOK, map[string]int64{})
		return
	}

	counts, err := db.FavoritesByQuestionIDs(h.db, req.IDs)
	if err != nil {
		slog.Error("failed to query batch favorites", "error", err, "ids", len(req.IDs))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, counts)
}
