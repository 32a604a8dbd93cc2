// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/qbank-api/cliparse"
	"github.com/danielhkuo/qbank-api/db"
	"github.com/danielhkuo/qbank-api/middleware"
	"github.com/danielhkuo/qbank-api/models"
)

type FavoriteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFavoriteHandler(database *sql.DB, cfg cliparse.Config) *FavoriteHandler {
	return &FavoriteHandler{db: database, cfg: cfg}
}

// Toggle handles POST /api/fav
// Applies the add/remove delta and returns the resulting count. The
// read-back runs outside any transaction; a concurrent toggle can make the
// returned count newer than this request's write, which is fine since the
// write itself already landed.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req models.FavRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.QuestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing questionId")
		return
	}

	delta := int64(-1)
	if req.Action == models.FavActionAdd {
		delta = 1
	}

	if err := db.AdjustFavorite(h.db, req.QuestionID, delta); err != nil {
		slog.Error("failed to adjust favorite", "error", err, "question_id", req.QuestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update favorite")
		return
	}

	count, err := db.FavoriteCount(h.db, req.QuestionID)
	if err != nil {
		slog.Error("failed to read favorite count", "error", err, "question_id", req.QuestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FavResponse{Count: count})
}
