package storage

import "time"

// Repository is the persistence surface the core talks to. The store
// itself is opaque beyond this contract.
type Repository interface {
	// InsertRecord persists one submitted match result and fills in its ID.
	InsertRecord(rec *GameRecord) error
	// Leaderboard returns one best record per session for the requested
	// page, plus the total number of qualifying sessions. from/to filter on
	// submission time when non-nil.
	Leaderboard(page, pageSize int, from, to *time.Time) ([]GameRecord, int64, error)
}
