// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/qbank-api/auth"
	"github.com/danielhkuo/qbank-api/cliparse"
	"github.com/danielhkuo/qbank-api/middleware"
	"github.com/danielhkuo/qbank-api/models"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Handle dispatches /api/user on the action query parameter.
// register, login and upload are POST; download is GET.
func (h *UserHandler) Handle(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")

	switch {
	case action == "register" && r.Method == http.MethodPost:
		h.register(w, r)
	case action == "login" && r.Method == http.MethodPost:
		h.login(w, r)
	case action == "upload" && r.Method == http.MethodPost:
		h.upload(w, r)
	case action == "download" && r.Method == http.MethodGet:
		h.download(w, r)
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid action")
	}
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if len(req.Username) < 3 || len(req.Password) < 6 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be at least 3 characters and password at least 6")
		return
	}

	// Check username is free
	var existingID int64
	err := h.db.QueryRow("SELECT id FROM users WHERE username = ?", req.Username).Scan(&existingID)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		slog.Error("failed to generate salt", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	hash, err := auth.HashPassword(req.Password, salt)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO users (username, password_hash, salt, created_at)
		VALUES (?, ?, ?, ?)
	`, req.Username, hash, salt, time.Now().UnixMilli())

	if err != nil {
		// Check if it's a uniqueness violation (registration race)
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("user registered", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{
		Success: true,
		Msg:     "Registration complete, please log in",
	})
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var userID int64
	var hash, salt string
	err := h.db.QueryRow(`
		SELECT id, password_hash, salt FROM users WHERE username = ?
	`, req.Username).Scan(&userID, &hash, &salt)

	// Same response for unknown user and wrong password so usernames
	// can't be enumerated
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !auth.VerifyPassword(req.Password, salt, hash) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.CreateSession(h.db, userID)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Success:  true,
		Token:    token,
		Username: req.Username,
	})
}

func (h *UserHandler) upload(w http.ResponseWriter, r *http.Request) {
	userID, _, err := auth.UserFromRequest(h.db, r)
	if errors.Is(err, auth.ErrNoSession) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.UploadRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Absent blobs are stored as JSON null so download round-trips cleanly
	if len(req.Records) == 0 {
		req.Records = json.RawMessage("null")
	}
	if len(req.Favs) == 0 {
		req.Favs = json.RawMessage("null")
	}

	now := time.Now().UnixMilli()

	_, err = h.db.Exec(`
		INSERT INTO user_data (user_id, records_json, favs_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			records_json = excluded.records_json,
			favs_json = excluded.favs_json,
			updated_at = excluded.updated_at
	`, userID, string(req.Records), string(req.Favs), now)

	if err != nil {
		slog.Error("failed to upsert user data", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save progress")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{
		Success: true,
		Time:    now,
	})
}

func (h *UserHandler) download(w http.ResponseWriter, r *http.Request) {
	userID, _, err := auth.UserFromRequest(h.db, r)
	if errors.Is(err, auth.ErrNoSession) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var records, favs string
	var updatedAt int64
	err = h.db.QueryRow(`
		SELECT records_json, favs_json, updated_at FROM user_data WHERE user_id = ?
	`, userID).Scan(&records, &favs, &updatedAt)

	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusOK, models.DownloadEmptyResponse{Empty: true})
		return
	}
	if err != nil {
		slog.Error("failed to query user data", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DownloadResponse{
		Success:   true,
		Records:   json.RawMessage(records),
		Favs:      json.RawMessage(favs),
		UpdatedAt: updatedAt,
	})
}
