// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the qbank API server.

qbank is the backend for a quiz question-bank web app: accounts with
progress sync, per-question comments, and per-question answer/favorite
statistics, all stored in SQLite.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=qbank.db USER_ORIGIN=https://qbank.example.com IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 3318 -d qbank.db -user-origin https://qbank.example.com -ip-salt ...

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite database path or DSN
  - USER_ORIGIN (-user-origin): allowed CORS origin for the user endpoint
  - IP_HASH_SALT (-ip-salt): secret for comment IP hashing

Optional settings:

  - PORT (-p): Server port (default: 3318)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (user, comments, stats, fav, batch)
  - router: Route definitions using Go 1.22+ routing, CORS at the edge
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing and session tokens
  - db: Schema creation and stats data access
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
