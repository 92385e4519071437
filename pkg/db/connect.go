package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// validSyncModes lists the allowed values for the synchronous pragma.
var validSyncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true,
}

// OpenDBConnection opens the history database at baseDSN.
// enableWAL sets the journal_mode to WAL; syncPragma sets the synchronous pragma
// and must be one of OFF, NORMAL, FULL or EXTRA (case-insensitive) when non-empty.
func OpenDBConnection(baseDSN string, enableWAL bool, syncPragma string) (*sql.DB, error) {
	params := url.Values{}

	if enableWAL {
		params.Add("_journal_mode", "WAL")
	}

	if syncPragma != "" {
		ucSyncPragma := strings.ToUpper(syncPragma)
		if !validSyncModes[ucSyncPragma] {
			return nil, fmt.Errorf("invalid sync pragma value: %s. Must be one of OFF, NORMAL, FULL, EXTRA", syncPragma)
		}
		params.Add("_synchronous", ucSyncPragma)
	}

	constructedDSN := baseDSN
	if len(params) > 0 {
		if strings.Contains(baseDSN, "?") {
			constructedDSN += "&" + params.Encode()
		} else {
			constructedDSN += "?" + params.Encode()
		}
	}

	conn, err := sql.Open("sqlite3", constructedDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database with DSN '%s': %w", constructedDSN, err)
	}

	// Every new connection to :memory: is a new, empty database.
	if baseDSN == MemoryDSN {
		conn.SetMaxOpenConns(1)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database with DSN '%s': %w", constructedDSN, err)
	}

	if _, err = conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign key support for DSN '%s': %w", constructedDSN, err)
	}

	return conn, nil
}
