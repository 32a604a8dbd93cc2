// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite database path or DSN (required)
  - UserOrigin: Allowed CORS origin for the user endpoint (required)
  - IPHashSalt: Secret for comment IP hashing (required)

# CLI Flags

	-p           Server port
	-d           Database path or DSN
	-user-origin User endpoint CORS origin
	-ip-salt     IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	DATABASE_URL → -d
	USER_ORIGIN  → -user-origin
	IP_HASH_SALT → -ip-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - USER_ORIGIN must be provided
  - IP_HASH_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("sqlite", cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
