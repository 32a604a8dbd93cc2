// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/qbank-api/auth"
	"github.com/danielhkuo/qbank-api/cliparse"
	"github.com/danielhkuo/qbank-api/middleware"
	"github.com/danielhkuo/qbank-api/models"
)

const (
	maxCommentLen  = 5000
	maxNicknameLen = 20
	listLimit      = 50
)

// Stored text is escaped, not fully sanitized - the frontend still treats
// it as untrusted.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

type CommentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCommentHandler(db *sql.DB, cfg cliparse.Config) *CommentHandler {
	return &CommentHandler{db: db, cfg: cfg}
}

// List handles GET /api/comments?qid=
// Returns the 50 most recent comments for a question. Comments posted by an
// account show the account username; guest comments show their stored nickname.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	questionID := r.URL.Query().Get("qid")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "qid is required")
		return
	}

	rows, err := h.db.Query(`
		SELECT c.id, COALESCE(u.username, c.nickname) AS nickname,
		       c.content, c.user_id, c.created_at, c.updated_at
		FROM comments c
		LEFT JOIN users u ON c.user_id = u.id
		WHERE c.question_id = ?
		ORDER BY c.created_at DESC
		LIMIT ?
	`, questionID, listLimit)

	if err != nil {
		slog.Error("failed to query comments", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Nickname, &c.Content, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			slog.Error("failed to scan comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, comments)
}

// Post handles POST /api/comments?qid=
// A valid bearer token attributes the comment to the account and its
// username; the client-supplied nickname only applies to guest posts.
func (h *CommentHandler) Post(w http.ResponseWriter, r *http.Request) {
	questionID := r.URL.Query().Get("qid")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "qid is required")
		return
	}

	// Token is optional here; an invalid or expired one just means a guest post
	userID, username, err := auth.UserFromRequest(h.db, r)
	authed := err == nil
	if err != nil && !errors.Is(err, auth.ErrNoSession) {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.PostCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	nickname := req.Nickname
	if authed {
		nickname = username
	}

	if req.Content == "" || utf8.RuneCountInString(req.Content) > maxCommentLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required and must be at most 5000 characters")
		return
	}
	if nickname == "" || utf8.RuneCountInString(nickname) > maxNicknameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required and must be at most 20 characters")
		return
	}

	var ownerID *int64
	if authed {
		ownerID = &userID
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	_, err = h.db.Exec(`
		INSERT INTO comments (question_id, nickname, content, ip_hash, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, questionID, escapeHTML(nickname), escapeHTML(req.Content), ipHash, ownerID, time.Now().UnixMilli())

	if err != nil {
		slog.Error("failed to insert comment", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post comment")
		return
	}

	slog.Info("comment posted", "question_id", questionID, "authed", authed)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Edit handles PUT /api/comments
// Only the owning account may edit; ownership never changes.
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
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

	var req models.EditCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CommentID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "commentId is required")
		return
	}
	if req.Content == "" || utf8.RuneCountInString(req.Content) > maxCommentLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required and must be at most 5000 characters")
		return
	}

	var ownerID sql.NullInt64
	err = h.db.QueryRow("SELECT user_id FROM comments WHERE id = ?", req.CommentID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Comment not found")
		return
	}
	if err != nil {
		slog.Error("failed to query comment", "error", err, "comment_id", req.CommentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !ownerID.Valid || ownerID.Int64 != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "You can only edit your own comments")
		return
	}

	_, err = h.db.Exec(`
		UPDATE comments SET content = ?, updated_at = ? WHERE id = ?
	`, escapeHTML(req.Content), time.Now().UnixMilli(), req.CommentID)

	if err != nil {
		slog.Error("failed to update comment", "error", err, "comment_id", req.CommentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to edit comment")
		return
	}

	slog.Info("comment edited", "comment_id", req.CommentID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}
