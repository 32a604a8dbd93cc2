// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/qbank-api/models"
	"github.com/danielhkuo/qbank-api/testutil"
)

func readStats(t *testing.T, conn *sql.DB, questionID string) (correct, total, fav int64) {
	t.Helper()
	err := conn.QueryRow(`
		SELECT correct_count, total_count, fav_count FROM question_stats WHERE question_id = ?
	`, questionID).Scan(&correct, &total, &fav)
	if err != nil {
		t.Fatalf("Stats row not found for %s: %v", questionID, err)
	}
	return
}

func TestRecordAnswer_Accumulates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewStatsHandler(conn, testutil.GetTestConfig())

	record := func(value int) {
		req := testutil.MakeRequest("POST", "/api/stats",
			models.StatsRequest{QuestionID: "q1", Type: "answer", Value: value}, nil)
		w := httptest.NewRecorder()
		handler.Record(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	// Two correct answers on a fresh question
	record(1)
	record(1)

	correct, total, _ := readStats(t, conn, "q1")
	if correct != 2 || total != 2 {
		t.Errorf("Expected 2/2, got %d/%d", correct, total)
	}

	// A wrong answer bumps only the total; any non-1 value counts as wrong
	record(0)
	record(7)

	correct, total, _ = readStats(t, conn, "q1")
	if correct != 2 || total != 4 {
		t.Errorf("Expected 2/4, got %d/%d", correct, total)
	}
}

func TestRecordFav_FloorAtZero(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewStatsHandler(conn, testutil.GetTestConfig())

	record := func(value int) {
		req := testutil.MakeRequest("POST", "/api/stats",
			models.StatsRequest{QuestionID: "q2", Type: "fav", Value: value}, nil)
		w := httptest.NewRecorder()
		handler.Record(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	// Removals on a fresh question must not drive the count negative
	record(-1)
	record(-1)

	_, _, fav := readStats(t, conn, "q2")
	if fav != 0 {
		t.Errorf("Expected fav_count 0, got %d", fav)
	}

	record(1)
	record(1)

	_, _, fav = readStats(t, conn, "q2")
	if fav != 2 {
		t.Errorf("Expected fav_count 2, got %d", fav)
	}
}

func TestRecord_BadRequests(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewStatsHandler(conn, testutil.GetTestConfig())

	tests := []struct {
		name string
		body models.StatsRequest
	}{
		{"missing question id", models.StatsRequest{Type: "answer", Value: 1}},
		{"unknown type", models.StatsRequest{QuestionID: "q1", Type: "bogus", Value: 1}},
		{"empty type", models.StatsRequest{QuestionID: "q1", Value: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Record(w, testutil.MakeRequest("POST", "/api/stats", tt.body, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	// Nothing should have been written
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM question_stats").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected no stats rows, got %d", count)
	}
}
