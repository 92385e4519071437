package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/unowned-ai/epoch/pkg/history"
	"github.com/unowned-ai/epoch/pkg/timestamps"
)

type toolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Epoch MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_epoch"), nil
}

// RegisterConvertEpochTool registers convert_epoch. Conversions are saved when db is not nil.
func RegisterConvertEpochTool(s *server.MCPServer, log *zap.SugaredLogger, db *sql.DB, loc *time.Location) {
	convertTool := mcp.NewTool("convert_epoch",
		mcp.WithDescription("Converts an epoch value to a date-time. The unit (seconds, milli-, micro- or nano-seconds) is inferred from the magnitude of the value."),
		mcp.WithString("value", mcp.Required(), mcp.Description("The epoch value as a base 10 integer, e.g. '1630779114123'.")),
	)
	s.AddTool(convertTool, convertEpochHandler(log, db, loc))
}

func convertEpochHandler(log *zap.SugaredLogger, db *sql.DB, loc *time.Location) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		value, ok := request.Params.Arguments["value"].(string)
		if !ok || value == "" {
			return mcp.NewToolResultError("'value' parameter is required and must be a non-empty string."), nil
		}
		value = strings.TrimSpace(value)

		parsed, ok := timestamps.TryParse(value)
		if !ok {
			return mcp.NewToolResultError("Failed to parse argument"), nil
		}
		log.Debugw("converted epoch", "input", value, "unit", parsed.Unit)

		if db != nil {
			if _, err := history.Save(ctx, db, value, parsed); err != nil {
				// History is best effort.
				log.Warnw("failed to save conversion", "input", value, "error", err)
			}
		}

		return jsonResult(newConversionResult(value, parsed, loc))
	}
}

// RegisterCurrentTimeTool registers current_time, which reports now() as a nanosecond epoch.
func RegisterCurrentTimeTool(s *server.MCPServer, now func() time.Time, loc *time.Location) {
	currentTimeTool := mcp.NewTool("current_time",
		mcp.WithDescription("Returns the current time in UTC and in the server's local zone, with its epoch in seconds and milliseconds."),
	)
	s.AddTool(currentTimeTool, currentTimeHandler(now, loc))
}

func currentTimeHandler(now func() time.Time, loc *time.Location) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(newConversionResult("", timestamps.FromTime(now()), loc))
	}
}

// RegisterListHistoryTool registers list_history.
func RegisterListHistoryTool(s *server.MCPServer, db *sql.DB) {
	listHistoryTool := mcp.NewTool("list_history",
		mcp.WithDescription("Lists previously converted epoch values, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of records to return. Omit or use 0 for all.")),
	)
	s.AddTool(listHistoryTool, listHistoryHandler(db))
}

func listHistoryHandler(db *sql.DB) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := 0
		if raw, ok := request.Params.Arguments["limit"]; ok {
			l, ok := raw.(float64)
			if !ok || l < 0 {
				return mcp.NewToolResultError("'limit' must be a non-negative number."), nil
			}
			limit = int(l)
		}

		records, err := history.List(ctx, db, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list history: %v", err)), nil
		}
		if len(records) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}
		return jsonResult(records)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
