// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the qbank API.

# Route Registration

NewRouter creates a configured handler with all endpoints:

	handler := router.NewRouter(db, cfg)

The returned handler wraps the mux in CORS middleware so preflight
OPTIONS requests are answered before method matching.

# Endpoints

Health:

	GET /health

Accounts and progress (action selected by query parameter):

	POST /api/user?action=register - Create account
	POST /api/user?action=login    - Issue bearer token
	POST /api/user?action=upload   - Store progress blobs
	GET  /api/user?action=download - Fetch progress blobs

Comments:

	GET  /api/comments?qid={id} - List recent comments
	POST /api/comments?qid={id} - Post comment (auth optional)
	PUT  /api/comments          - Edit own comment (auth required)

Counters:

	POST /api/stats      - Record answer/favorite event
	POST /api/fav        - Toggle favorite, return count
	POST /api/batch-info - Batched rate/total/fav lookup
	POST /api/fav-batch  - Batched favorite counts

# CORS

The user endpoint is pinned to cfg.UserOrigin; every other route allows
any origin.

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)
	statsHandler := handlers.NewStatsHandler(db, cfg)
	favHandler := handlers.NewFavoriteHandler(db, cfg)
	batchHandler := handlers.NewBatchHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
