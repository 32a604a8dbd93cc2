// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and counter data access.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - users: Accounts with salted password hashes
  - sessions: Bearer tokens with millisecond expiry
  - user_data: One progress row per user (records/favs blobs)
  - comments: Per-question comments with optional owning user
  - question_stats: Per-question answer and favorite counters

# Relationships

	users 1──* sessions
	users 1──1 user_data
	users 1──* comments (nullable; guest comments have no owner)

question_stats is keyed by question ID alone; questions themselves live
in the frontend content bundle, not in this database.

# Indexes

Performance indexes on:

  - users.username (unique)
  - sessions.token (primary key)
  - sessions.expires_at (for pruning)
  - comments.(question_id, created_at)

# Counter Access

Answer and favorite counters are written with single upserts and read in
chunks of at most 10 IDs per query:

	err := db.RecordAnswer(conn, questionID, correct)
	err := db.AdjustFavorite(conn, questionID, +1)
	stats, err := db.StatsByQuestionIDs(conn, ids)

fav_count can never go below zero: every write path clamps with MAX(0, ...)
and the schema carries a CHECK constraint as a backstop.

# Session Pruning

Expired session rows are deleted by PruneExpiredSessions, called
periodically from main:

	n, err := db.PruneExpiredSessions(conn)
*/
package db
