// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the qbank API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: registration, login, progress upload/download
  - CommentHandler: per-question comment list/post/edit
  - StatsHandler: answer and favorite counter events
  - FavoriteHandler: favorite toggle with count read-back
  - BatchHandler: batched stat lookups for question lists

Handlers are created via constructor functions that accept *sql.DB and Config:

	userHandler := handlers.NewUserHandler(db, cfg)

# User Endpoint

One route, four operations selected by the action query parameter:

	POST /api/user?action=register → register (409 on duplicate username)
	POST /api/user?action=login    → login (issues bearer token)
	POST /api/user?action=upload   → upload progress blobs (auth required)
	GET  /api/user?action=download → download progress blobs (auth required)

# Comments

	GET  /api/comments?qid=... → 50 most recent comments
	POST /api/comments?qid=... → post (auth optional; account posts use
	                             the account username as nickname)
	PUT  /api/comments         → edit own comment (auth required)

Comment text has &, < and > escaped before storage.

# Counters

	POST /api/stats      → record an answer or favorite event (upsert)
	POST /api/fav        → toggle favorite, returns resulting count
	POST /api/batch-info → map of id → {rate, total, fav}
	POST /api/fav-batch  → map of id → favorite count

Counter writes are single upserts; the database's conflict clause is the
only concurrency control. Favorite counts are clamped at zero on every
write path (see the db package).
*/
package handlers
