// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/qbank-api/auth"
	"github.com/danielhkuo/qbank-api/cliparse"
	"github.com/danielhkuo/qbank-api/db"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// A single connection is forced so every query sees the same memory DB.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        3318,
		DatabaseURL: ":memory:",
		UserOrigin:  "https://qbank.test",
		IPHashSalt:  "test-ip-salt",
	}
}

// CreateTestUser registers a user directly in the database and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, username, password string) int64 {
	t.Helper()

	salt, err := auth.GenerateSalt()
	if err != nil {
		t.Fatalf("Failed to generate salt: %v", err)
	}
	hash, err := auth.HashPassword(password, salt)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	res, err := conn.Exec(`
		INSERT INTO users (username, password_hash, salt, created_at)
		VALUES (?, ?, ?, ?)
	`, username, hash, salt, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test user id: %v", err)
	}

	return id
}

// CreateTestSession inserts a session expiring at the given time and
// returns its token
func CreateTestSession(t *testing.T, conn *sql.DB, userID int64, expiresAt time.Time) string {
	t.Helper()

	token := uuid.New().String()
	_, err := conn.Exec(`
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`, token, userID, expiresAt.UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CreateTestComment inserts a comment row and returns its ID.
// ownerID may be nil for guest comments.
func CreateTestComment(t *testing.T, conn *sql.DB, questionID, nickname, content string, ownerID *int64) int64 {
	t.Helper()

	res, err := conn.Exec(`
		INSERT INTO comments (question_id, nickname, content, ip_hash, user_id, created_at)
		VALUES (?, ?, ?, 'testhash', ?, ?)
	`, questionID, nickname, content, ownerID, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test comment id: %v", err)
	}

	return id
}

// SetTestStats writes a question_stats row directly
func SetTestStats(t *testing.T, conn *sql.DB, questionID string, correct, total, fav int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO question_stats (question_id, correct_count, total_count, fav_count, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(question_id) DO UPDATE SET
			correct_count = excluded.correct_count,
			total_count = excluded.total_count,
			fav_count = excluded.fav_count,
			last_updated = excluded.last_updated
	`, questionID, correct, total, fav, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to set test stats: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
