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

type StatsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewStatsHandler(database *sql.DB, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{db: database, cfg: cfg}
}

// Record handles POST /api/stats
// Dispatches on the type field: "answer" counts an attempt (value 1 =
// correct, anything else = wrong), "fav" adjusts the favorite count
// (value 1 = add, anything else = remove).
func (h *StatsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.StatsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.QuestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing questionId")
		return
	}

	switch req.Type {
	case models.StatTypeAnswer:
		if err := db.RecordAnswer(h.db, req.QuestionID, req.Value == 1); err != nil {
			slog.Error("failed to record answer", "error", err, "question_id", req.QuestionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record answer")
			return
		}

	case models.StatTypeFav:
		delta := int64(-1)
		if req.Value == 1 {
			delta = 1
		}
		if err := db.AdjustFavorite(h.db, req.QuestionID, delta); err != nil {
			slog.Error("failed to adjust favorite", "error", err, "question_id", req.QuestionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record favorite")
			return
		}

	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown type")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
