// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"time"
)

// PruneExpiredSessions deletes session rows whose expiry has passed and
// returns how many were removed. Token validation already ignores expired
// rows; pruning just stops them accumulating.
func PruneExpiredSessions(db *sql.DB) (int64, error) {
	res, err := db.Exec(`
		DELETE FROM sessions WHERE expires_at <= ?
	`, time.Now().UnixMilli())
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
