// Package datastore records export outcomes in a local SQLite database so
// batches can be audited after the fact.
package datastore

import "time"

// ExportRecord is one converted note in the export log.
type ExportRecord struct {
	Note       string
	Title      string
	Images     int
	Errors     int
	ExportedAt time.Time
}

// Store is the export log interface.
type Store interface {
	// Connect opens the underlying database
	Connect() error
	// Init creates the schema if it doesn't exist
	Init() error
	// Record appends export records for one batch
	Record(records []ExportRecord) error
	// Close closes the database connection
	Close() error
}
