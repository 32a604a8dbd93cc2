// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/qbank-api/models"
	"github.com/danielhkuo/qbank-api/testutil"
)

func TestListComments_MissingQID(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/api/comments", nil, nil))

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListComments_OrderAndJoin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())
	userID := testutil.CreateTestUser(t, conn, "alice", "password123")

	// Distinct timestamps so the DESC order is deterministic
	base := time.Now().UnixMilli()
	insert := func(nickname string, ownerID *int64, createdAt int64) {
		_, err := conn.Exec(`
			INSERT INTO comments (question_id, nickname, content, ip_hash, user_id, created_at)
			VALUES ('q1', ?, 'hello', 'testhash', ?, ?)
		`, nickname, ownerID, createdAt)
		if err != nil {
			t.Fatal(err)
		}
	}
	insert("guest1", nil, base-3000)
	insert("ignored", &userID, base-2000) // account comment, stored nickname is superseded
	insert("guest2", nil, base-1000)

	w := httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/api/comments?qid=q1", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var comments []models.Comment
	testutil.AssertJSON(t, w, &comments)

	if len(comments) != 3 {
		t.Fatalf("Expected 3 comments, got %d", len(comments))
	}

	// Newest first
	if comments[0].Nickname != "guest2" {
		t.Errorf("Expected newest comment first, got '%s'", comments[0].Nickname)
	}
	// Account comment shows the account username, not the stored nickname
	if comments[1].Nickname != "alice" {
		t.Errorf("Expected joined username 'alice', got '%s'", comments[1].Nickname)
	}
	if comments[1].UserID == nil || *comments[1].UserID != userID {
		t.Error("Expected owning user_id on account comment")
	}
	if comments[2].Nickname != "guest1" {
		t.Errorf("Expected oldest comment last, got '%s'", comments[2].Nickname)
	}
}

func TestListComments_EmptyIsArray(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/api/comments?qid=unseen", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", w.Body.String())
	}
}

func TestPostComment_Guest(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())

	tests := []struct {
		name           string
		path           string
		body           models.PostCommentRequest
		expectedStatus int
	}{
		{"valid", "/api/comments?qid=q1", models.PostCommentRequest{Content: "nice question", Nickname: "guest"}, http.StatusOK},
		{"missing qid", "/api/comments", models.PostCommentRequest{Content: "hi", Nickname: "guest"}, http.StatusBadRequest},
		{"missing nickname", "/api/comments?qid=q1", models.PostCommentRequest{Content: "hi"}, http.StatusBadRequest},
		{"nickname too long", "/api/comments?qid=q1", models.PostCommentRequest{Content: "hi", Nickname: strings.Repeat("n", 21)}, http.StatusBadRequest},
		{"missing content", "/api/comments?qid=q1", models.PostCommentRequest{Nickname: "guest"}, http.StatusBadRequest},
		{"content too long", "/api/comments?qid=q1", models.PostCommentRequest{Content: strings.Repeat("x", 5001), Nickname: "guest"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Post(w, testutil.MakeRequest("POST", tt.path, tt.body, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestPostComment_AuthedUsernameWins(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())
	userID := testutil.CreateTestUser(t, conn, "alice", "password123")
	token := testutil.CreateTestSession(t, conn, userID, time.Now().Add(time.Hour))

	// Client-supplied nickname is ignored for account posts, including an
	// empty one
	for _, nickname := range []string{"SomebodyElse", ""} {
		req := testutil.MakeRequest("POST", "/api/comments?qid=q1",
			models.PostCommentRequest{Content: "mine", Nickname: nickname},
			map[string]string{"Authorization": "Bearer " + token})
		w := httptest.NewRecorder()

		handler.Post(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	}

	rows, err := conn.Query("SELECT nickname, user_id FROM comments WHERE question_id = 'q1'")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var nickname string
		var ownerID int64
		if err := rows.Scan(&nickname, &ownerID); err != nil {
			t.Fatal(err)
		}
		if nickname != "alice" {
			t.Errorf("Expected stored nickname 'alice', got '%s'", nickname)
		}
		if ownerID != userID {
			t.Errorf("Expected owner %d, got %d", userID, ownerID)
		}
		count++
	}
	if count != 2 {
		t.Errorf("Expected 2 comments, got %d", count)
	}
}

func TestPostComment_EscapesHTML(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/comments?qid=q1",
		models.PostCommentRequest{Content: `<script>alert("x") & more</script>`, Nickname: "<b>bold</b>"}, nil)
	w := httptest.NewRecorder()

	handler.Post(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var content, nickname string
	err := conn.QueryRow("SELECT content, nickname FROM comments WHERE question_id = 'q1'").Scan(&content, &nickname)
	if err != nil {
		t.Fatal(err)
	}

	if content != `&lt;script&gt;alert("x") &amp; more&lt;/script&gt;` {
		t.Errorf("Content not escaped in storage: %s", content)
	}
	if nickname != "&lt;b&gt;bold&lt;/b&gt;" {
		t.Errorf("Nickname not escaped in storage: %s", nickname)
	}
}

func TestPostComment_StoresHashedIP(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/comments?qid=q1",
		models.PostCommentRequest{Content: "hi", Nickname: "guest"},
		map[string]string{"X-Forwarded-For": "203.0.113.7"})
	w := httptest.NewRecorder()

	handler.Post(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var ipHash string
	if err := conn.QueryRow("SELECT ip_hash FROM comments WHERE question_id = 'q1'").Scan(&ipHash); err != nil {
		t.Fatal(err)
	}

	// The raw address must never be stored, only the 16-hex-char digest
	if ipHash == "203.0.113.7" {
		t.Error("Raw IP stored instead of hash")
	}
	if len(ipHash) != 16 {
		t.Errorf("Expected 16 hex chars, got '%s'", ipHash)
	}
}

func TestEditComment(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewCommentHandler(conn, testutil.GetTestConfig())

	aliceID := testutil.CreateTestUser(t, conn, "alice", "password123")
	bobID := testutil.CreateTestUser(t, conn, "bob", "password123")
	aliceToken := testutil.CreateTestSession(t, conn, aliceID, time.Now().Add(time.Hour))
	bobToken := testutil.CreateTestSession(t, conn, bobID, time.Now().Add(time.Hour))

	commentID := testutil.CreateTestComment(t, conn, "q1", "alice", "original", &aliceID)
	guestCommentID := testutil.CreateTestComment(t, conn, "q1", "guest", "guest text", nil)

	t.Run("unauthenticated", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/comments",
			models.EditCommentRequest{CommentID: commentID, Content: "hacked"}, nil)
		w := httptest.NewRecorder()
		handler.Edit(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("nonexistent comment", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/comments",
			models.EditCommentRequest{CommentID: 99999, Content: "new"},
			map[string]string{"Authorization": "Bearer " + aliceToken})
		w := httptest.NewRecorder()
		handler.Edit(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/comments",
			models.EditCommentRequest{CommentID: commentID, Content: "bob was here"},
			map[string]string{"Authorization": "Bearer " + bobToken})
		w := httptest.NewRecorder()
		handler.Edit(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("guest comment has no owner", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/comments",
			models.EditCommentRequest{CommentID: guestCommentID, Content: "claimed"},
			map[string]string{"Authorization": "Bearer " + aliceToken})
		w := httptest.NewRecorder()
		handler.Edit(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("owner edits", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/comments",
			models.EditCommentRequest{CommentID: commentID, Content: "updated <text>"},
			map[string]string{"Authorization": "Bearer " + aliceToken})
		w := httptest.NewRecorder()
		handler.Edit(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var content string
		var updatedAt *int64
		if err := conn.QueryRow("SELECT content, updated_at FROM comments WHERE id = ?", commentID).Scan(&content, &updatedAt); err != nil {
			t.Fatal(err)
		}
		if content != "updated &lt;text&gt;" {
			t.Errorf("Expected escaped updated content, got '%s'", content)
		}
		if updatedAt == nil {
			t.Error("Expected updated_at to be set")
		}
	})

	t.Run("missing comment id", func(t *testing.T) {
		req := testutil.MakeRequest("PUT", "/api/comments",
			models.EditCommentRequest{Content: "new"},
			map[string]string{"Authorization": "Bearer " + aliceToken})
		w := httptest.NewRecorder()
		handler.Edit(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
