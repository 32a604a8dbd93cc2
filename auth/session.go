// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionTTL is how long an issued token stays valid
const SessionTTL = 30 * 24 * time.Hour

var ErrNoSession = errors.New("session not found or expired")

// CreateSession issues a fresh opaque token for the user and persists it.
// Every login gets its own token; existing sessions are untouched.
func CreateSession(db *sql.DB, userID int64) (string, error) {
	token := uuid.New().String()
	expiresAt := time.Now().Add(SessionTTL).UnixMilli()

	_, err := db.Exec(`
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`, token, userID, expiresAt)
	if err != nil {
		return "", err
	}

	return token, nil
}

// BearerToken extracts the token from the Authorization header,
// or "" if the header is absent or not a Bearer credential
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

// UserFromRequest resolves the request's bearer token to the owning user.
// Returns ErrNoSession when the token is missing, unknown, or expired.
func UserFromRequest(db *sql.DB, r *http.Request) (int64, string, error) {
	token := BearerToken(r)
	if token == "" {
		return 0, "", ErrNoSession
	}

	var userID int64
	var username string
	err := db.QueryRow(`
		SELECT u.id, u.username
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = ? AND s.expires_at > ?
	`, token, time.Now().UnixMilli()).Scan(&userID, &username)

	if err == sql.ErrNoRows {
		return 0, "", ErrNoSession
	}
	if err != nil {
		return 0, "", err
	}

	return userID, username, nil
}
