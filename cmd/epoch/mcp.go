package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/unowned-ai/epoch/pkg/mcp"
)

var mcpHistoryFlag bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the epoch MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes epoch conversion as MCP tools
via STDIO: ping, convert_epoch and current_time.

With --history every successful convert_epoch call is saved to the history database and
an additional list_history tool is registered. The --db flag is optional. If not provided,
a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\epoch\epoch.db
- macOS: ~/Library/Application Support/epoch/epoch.db
- Linux: ~/.local/share/epoch/epoch.db

Example:
  epoch mcp
  epoch mcp --history --db epoch.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewEpochMCPServer(logger, mcp.Options{
			History:  mcpHistoryFlag,
			DBPath:   dbPath,
			WALMode:  walMode,
			SyncMode: syncMode,
			Location: localZone,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := srv.Close(); err != nil {
				logger.Warnw("failed to close MCP server", "error", err)
			}
		}()

		tools := srv.RegisterTools()

		// stdout carries the JSON-RPC stream.
		if mcpHistoryFlag {
			fmt.Fprintf(os.Stderr, "Epoch MCP server started. DB: %s (WAL: %t, Sync: %s)\n", srv.DbPath, walMode, syncMode)
		} else {
			fmt.Fprintln(os.Stderr, "Epoch MCP server started without history.")
		}
		fmt.Fprintf(os.Stderr, "Available tools: %s\n", strings.Join(tools, ", "))
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		return srv.Start()
	},
}

func initMCPCmd() {
	mcpCmd.Flags().BoolVar(&mcpHistoryFlag, "history", false, "Save conversions and expose the list_history tool")
}
