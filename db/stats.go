// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/danielhkuo/qbank-api/models"
)

// chunkSize bounds the number of placeholders per IN (...) query so large
// batches stay under SQLite's bound-parameter limit
const chunkSize = 10

// RecordAnswer counts one answer attempt against the question's stats row.
// The upsert is the only concurrency control: the conflict clause adjusts
// the counters atomically under concurrent writers.
func RecordAnswer(db *sql.DB, questionID string, correct bool) error {
	isCorrect := 0
	if correct {
		isCorrect = 1
	}

	_, err := db.Exec(`
		INSERT INTO question_stats (question_id, correct_count, total_count, fav_count, last_updated)
		VALUES (?, ?, 1, 0, ?)
		ON CONFLICT(question_id) DO UPDATE SET
			correct_count = correct_count + excluded.correct_count,
			total_count = total_count + 1,
			last_updated = excluded.last_updated
	`, questionID, isCorrect, time.Now().UnixMilli())

	return err
}

// AdjustFavorite applies delta to the question's favorite count, clamped so
// the stored count never drops below zero. Every favorite write goes through
// here, keeping the non-negativity invariant in one place.
func AdjustFavorite(db *sql.DB, questionID string, delta int64) error {
	now := time.Now().UnixMilli()

	_, err := db.Exec(`
		INSERT INTO question_stats (question_id, correct_count, total_count, fav_count, last_updated)
		VALUES (?, 0, 0, MAX(0, ?), ?)
		ON CONFLICT(question_id) DO UPDATE SET
			fav_count = MAX(0, fav_count + ?),
			last_updated = ?
	`, questionID, delta, now, delta, now)

	return err
}

// FavoriteCount reads the current favorite count, 0 if the row doesn't exist
func FavoriteCount(db *sql.DB, questionID string) (int64, error) {
	var count int64
	err := db.QueryRow(`
		SELECT fav_count FROM question_stats WHERE question_id = ?
	`, questionID).Scan(&count)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return count, nil
}

// StatsByQuestionIDs fetches stats rows for the given question IDs, querying
// in fixed-size chunks. IDs with no stats row are simply absent from the result.
func StatsByQuestionIDs(db *sql.DB, ids []string) ([]models.QuestionStats, error) {
	var all []models.QuestionStats

	for chunk := range chunks(ids) {
		rows, err := db.Query(`
			SELECT question_id, correct_count, total_count, fav_count
			FROM question_stats
			WHERE question_id IN (`+placeholders(len(chunk))+`)
		`, toArgs(chunk)...)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			var s models.QuestionStats
			if err := rows.Scan(&s.QuestionID, &s.CorrectCount, &s.TotalCount, &s.FavCount); err != nil {
				rows.Close()
				return nil, err
			}
			all = append(all, s)
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return all, nil
}

// FavoritesByQuestionIDs fetches favorite counts keyed by question ID,
// chunked the same way as StatsByQuestionIDs
func FavoritesByQuestionIDs(db *sql.DB, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64)

	for chunk := range chunks(ids) {
		rows, err := db.Query(`
			SELECT question_id, fav_count
			FROM question_stats
			WHERE question_id IN (`+placeholders(len(chunk))+`)
		`, toArgs(chunk)...)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			var id string
			var count int64
			if err := rows.Scan(&id, &count); err != nil {
				rows.Close()
				return nil, err
			}
			counts[id] = count
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return counts, nil
}

// chunks yields ids in slices of at most chunkSize
func chunks(ids []string) func(yield func([]string) bool) {
	return func(yield func([]string) bool) {
		for i := 0; i < len(ids); i += chunkSize {
			end := min(i+chunkSize, len(ids))
			if !yield(ids[i:end]) {
				return
			}
		}
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
