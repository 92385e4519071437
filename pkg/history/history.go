package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/unowned-ai/epoch/pkg/timestamps"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

const (
	saveRecordStatement = `
	INSERT INTO conversions (id, input, raw, unit, seconds, nanos)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	getRecordStatement = `
	SELECT id, input, raw, unit, seconds, nanos, created_at
	FROM conversions
	WHERE id = ?
	`

	listRecordsStatement = `
	SELECT id, input, raw, unit, seconds, nanos, created_at
	FROM conversions
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?
	`

	deleteRecordStatement = `
	DELETE FROM conversions
	WHERE id = ?
	`

	clearRecordsStatement = `
	DELETE FROM conversions
	`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		record   Record
		unitName string
	)
	err := row.Scan(
		&record.ID,
		&record.Input,
		&record.Raw,
		&unitName,
		&record.Seconds,
		&record.Nanos,
		&record.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	record.Unit, err = timestamps.ParseUnit(unitName)
	if err != nil {
		return Record{}, fmt.Errorf("record %s: %w", record.ID, err)
	}
	return record, nil
}

// Save stores a successful conversion of input and returns the stored record.
func Save(ctx context.Context, db *sql.DB, input string, parsed timestamps.ParsedTime) (Record, error) {
	recordID := uuid.New()

	_, err := db.ExecContext(
		ctx,
		saveRecordStatement,
		recordID,
		input,
		parsed.Ticks(),
		parsed.Unit.String(),
		parsed.Seconds,
		parsed.Nanos,
	)
	if err != nil {
		return Record{}, err
	}

	return Get(ctx, db, recordID)
}

func Get(ctx context.Context, db *sql.DB, id uuid.UUID) (Record, error) {
	record, err := scanRecord(db.QueryRowContext(ctx, getRecordStatement, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	return record, nil
}

// List returns the newest limit records, or all of them when limit <= 0.
func List(ctx context.Context, db *sql.DB, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := db.QueryContext(ctx, listRecordsStatement, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func Delete(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	res, err := db.ExecContext(ctx, deleteRecordStatement, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Clear removes every record and reports how many were removed.
func Clear(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, clearRecordsStatement)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
