package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// TargetSchemaVersion is the highest historydb schema version this binary understands.
	TargetSchemaVersion int64 = 1
	// HistoryDBComponent names the conversion-history component in epoch_versions.
	HistoryDBComponent = "historydb"
)

// GetComponentSchemaVersion retrieves the schema version for a given component.
// Returns 0 if the component is not found or the versions table doesn't exist yet.
func GetComponentSchemaVersion(conn *sql.DB, componentName string) (int64, error) {
	query := `SELECT version FROM epoch_versions WHERE component = ?;`

	var version int64
	err := conn.QueryRow(query, componentName).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "epoch_versions") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates the historydb tables and records schemaVersionToSet for the component.
func InitializeSchema(log *zap.SugaredLogger, conn *sql.DB, schemaVersionToSet int64) error {
	if _, err := conn.Exec(SchemaV1); err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	insertVersionSQL := `
INSERT INTO epoch_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	if _, err := conn.Exec(insertVersionSQL, HistoryDBComponent, schemaVersionToSet); err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", HistoryDBComponent, schemaVersionToSet, err)
	}

	log.Infow("schema initialized", "component", HistoryDBComponent, "version", schemaVersionToSet)
	return nil
}

// UpgradeDB brings the historydb component of conn to appTargetSchemaVersion.
// dbIdentifierForLog is only used in messages.
func UpgradeDB(log *zap.SugaredLogger, conn *sql.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	currentDBVersion, err := GetComponentSchemaVersion(conn, HistoryDBComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0:
		log.Debugw("initializing database",
			"component", HistoryDBComponent, "db", dbIdentifierForLog, "target", appTargetSchemaVersion)
		if err := InitializeSchema(log, conn, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", HistoryDBComponent, dbIdentifierForLog, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		log.Debugw("database is up to date",
			"component", HistoryDBComponent, "db", dbIdentifierForLog, "version", currentDBVersion)
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is older than application's target schema version %d. Automatic migration from this older version is not yet supported", HistoryDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	default:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", HistoryDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}

// Open connects to path and upgrades its schema, closing the connection again
// when the upgrade fails.
func Open(log *zap.SugaredLogger, path string, enableWAL bool, syncPragma string) (*sql.DB, error) {
	conn, err := OpenDBConnection(path, enableWAL, syncPragma)
	if err != nil {
		return nil, err
	}
	if err := UpgradeDB(log, conn, path, TargetSchemaVersion); err != nil {
		conn.Close()
		return nil, err
	}
	log.Debugw("history database ready", "path", path, "wal", enableWAL, "sync", syncPragma)
	return conn, nil
}
