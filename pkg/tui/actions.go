package tui

import (
	"context"
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/unowned-ai/epoch/pkg/history"
	"github.com/unowned-ai/epoch/pkg/timestamps"
)

const historyLimit = 200

type recordSavedMsg history.Record

type recordDeletedMsg uuid.UUID

// Load the most recent history records
func listRecords(db *sql.DB) tea.Cmd {
	return func() tea.Msg {
		records, err := history.List(context.Background(), db, historyLimit)
		if err != nil {
			return err
		}
		return records
	}
}

// Save a conversion and hand back the stored record
func saveRecord(db *sql.DB, input string, parsed timestamps.ParsedTime) tea.Cmd {
	return func() tea.Msg {
		record, err := history.Save(context.Background(), db, input, parsed)
		if err != nil {
			return err
		}
		return recordSavedMsg(record)
	}
}

func deleteRecord(db *sql.DB, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		if err := history.Delete(context.Background(), db, id); err != nil {
			return err
		}
		return recordDeletedMsg(id)
	}
}
