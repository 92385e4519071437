package main

import (
	"database/sql"
	"time"

	pkgdb "github.com/unowned-ai/epoch/pkg/db"
	"github.com/unowned-ai/epoch/pkg/utils"
)

var (
	dbPath   string
	walMode  bool
	syncMode string
)

// openDB resolves --db (or the default path) and opens an upgraded history database.
func openDB() (*sql.DB, error) {
	path, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}
	return pkgdb.Open(logger, path, walMode, syncMode)
}

// formatTimestamp converts a Unix timestamp (float64, seconds since epoch)
// to a human-readable string in RFC3339 format.
func formatTimestamp(timestamp float64) string {
	timeObj := time.Unix(int64(timestamp), 0)
	return timeObj.In(localZone).Format(time.RFC3339)
}
