package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	pkgdb "github.com/unowned-ai/epoch/pkg/db"
	"github.com/unowned-ai/epoch/pkg/history"
	"github.com/unowned-ai/epoch/pkg/timestamps"
)

var testZone = time.FixedZone("UTC+2", 2*60*60)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := pkgdb.Open(zap.NewNop().Sugar(), pkgdb.MemoryDSN, false, "")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	return conn
}

func callTool(t *testing.T, handler toolHandler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	var request mcp.CallToolRequest
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("Handler returned an error: %v", err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("Handler returned an empty result")
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestPingHandler(t *testing.T) {
	result := callTool(t, pingHandler, nil)
	if got := resultText(t, result); got != "pong_epoch" {
		t.Errorf("Expected pong_epoch, got %s", got)
	}
}

func TestConvertEpochHandler(t *testing.T) {
	handler := convertEpochHandler(zap.NewNop().Sugar(), nil, testZone)

	result := callTool(t, handler, map[string]interface{}{"value": "1630779114123"})
	if result.IsError {
		t.Fatalf("Expected success, got error result: %s", resultText(t, result))
	}

	var got conversionResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}

	want := conversionResult{
		Input:        "1630779114123",
		Unit:         timestamps.Milliseconds,
		UTC:          "2021-09-04T18:11:54.123+00:00",
		Local:        "2021-09-04T20:11:54.123+02:00",
		Seconds:      1630779114,
		Nanos:        123_000_000,
		EpochSeconds: 1630779114,
		EpochMillis:  1630779114123,
	}
	if got != want {
		t.Errorf("Result mismatch.\nExpected: %+v\nGot:      %+v", want, got)
	}
}

func TestConvertEpochHandlerErrors(t *testing.T) {
	handler := convertEpochHandler(zap.NewNop().Sugar(), nil, testZone)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing value", map[string]interface{}{}, "'value' parameter is required and must be a non-empty string."},
		{"wrong type", map[string]interface{}{"value": 1630779114}, "'value' parameter is required and must be a non-empty string."},
		{"not a number", map[string]interface{}{"value": "abc"}, "Failed to parse argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, handler, tt.args)
			if !result.IsError {
				t.Errorf("Expected an error result")
			}
			if got := resultText(t, result); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConvertEpochHandlerSavesHistory(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	handler := convertEpochHandler(zap.NewNop().Sugar(), testDB, testZone)
	callTool(t, handler, map[string]interface{}{"value": "1630779114"})
	callTool(t, handler, map[string]interface{}{"value": "abc"})

	records, err := history.List(context.Background(), testDB, 0)
	if err != nil {
		t.Fatalf("history.List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 saved record, got %d", len(records))
	}
	if records[0].Input != "1630779114" {
		t.Errorf("Expected saved input 1630779114, got %s", records[0].Input)
	}
}

func TestCurrentTimeHandler(t *testing.T) {
	fixed := time.Date(2021, 9, 4, 18, 11, 54, 123_456_789, time.UTC)
	handler := currentTimeHandler(func() time.Time { return fixed }, testZone)

	result := callTool(t, handler, nil)

	var got conversionResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if got.Unit != timestamps.Nanoseconds {
		t.Errorf("Expected nano-seconds, got %s", got.Unit)
	}
	if got.UTC != "2021-09-04T18:11:54.123456789+00:00" {
		t.Errorf("Unexpected UTC rendering: %s", got.UTC)
	}
	if got.Input != "" {
		t.Errorf("Expected no input for current_time, got %s", got.Input)
	}
}

func TestListHistoryHandler(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	for _, input := range []string{"1630779114", "1630779114123", "1630779114123456"} {
		parsed, _ := timestamps.TryParse(input)
		if _, err := history.Save(ctx, testDB, input, parsed); err != nil {
			t.Fatalf("Failed to save %s: %v", input, err)
		}
	}

	handler := listHistoryHandler(testDB)

	result := callTool(t, handler, map[string]interface{}{"limit": float64(2)})
	var records []history.Record
	if err := json.Unmarshal([]byte(resultText(t, result)), &records); err != nil {
		t.Fatalf("Failed to decode records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Unit != timestamps.Microseconds {
		t.Errorf("Expected newest record first, got unit %s", records[0].Unit)
	}

	result = callTool(t, handler, map[string]interface{}{"limit": "two"})
	if !result.IsError {
		t.Errorf("Expected an error result for a non-numeric limit")
	}
}

func TestListHistoryHandlerEmpty(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	result := callTool(t, listHistoryHandler(testDB), nil)
	if got := resultText(t, result); got != "[]" {
		t.Errorf("Expected [], got %s", got)
	}
}

func TestNewEpochMCPServer(t *testing.T) {
	log := zap.NewNop().Sugar()

	srv, err := NewEpochMCPServer(log, Options{})
	if err != nil {
		t.Fatalf("NewEpochMCPServer failed: %v", err)
	}
	if srv.DB() != nil {
		t.Errorf("Expected no database without history")
	}
	if names := srv.RegisterTools(); len(names) != 3 {
		t.Errorf("Expected 3 tools without history, got %v", names)
	}
	if err := srv.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "epoch.db")
	srv, err = NewEpochMCPServer(log, Options{History: true, DBPath: path, WALMode: true, SyncMode: "FULL"})
	if err != nil {
		t.Fatalf("NewEpochMCPServer with history failed: %v", err)
	}
	if srv.DbPath != path {
		t.Errorf("Expected db path %s, got %s", path, srv.DbPath)
	}
	if names := srv.RegisterTools(); len(names) != 4 || names[3] != "list_history" {
		t.Errorf("Expected list_history to be registered, got %v", names)
	}
	if err := srv.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
