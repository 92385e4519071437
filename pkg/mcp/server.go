package mcp

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	epochpkg "github.com/unowned-ai/epoch/pkg"
	pkgdb "github.com/unowned-ai/epoch/pkg/db"
	"github.com/unowned-ai/epoch/pkg/utils"
)

// Options configures NewEpochMCPServer.
type Options struct {
	// History enables saving conversions and the list_history tool.
	History bool
	// DBPath is the history database; empty means the platform default.
	DBPath   string
	WALMode  bool
	SyncMode string
	// Location is the zone used for the "local" field of results; nil means time.Local.
	Location *time.Location
}

type EpochMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	log       *zap.SugaredLogger
	loc       *time.Location
	DbPath    string
}

// NewEpochMCPServer builds an MCP server and, when opts.History is set, opens
// and upgrades the history database it writes to.
func NewEpochMCPServer(log *zap.SugaredLogger, opts Options) (*EpochMCPServer, error) {
	s := server.NewMCPServer(
		"Epoch MCP Server",
		epochpkg.Version,
		server.WithLogging(),
		server.WithRecovery(),
	)

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	srv := &EpochMCPServer{
		mcpServer: s,
		log:       log,
		loc:       loc,
	}

	if !opts.History {
		return srv, nil
	}

	dbPath, err := utils.ResolveAndEnsureDBPath(opts.DBPath)
	if err != nil {
		return nil, err
	}

	dbConn, err := pkgdb.Open(log, dbPath, opts.WALMode, opts.SyncMode)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database '%s': %w", dbPath, err)
	}

	srv.db = dbConn
	srv.DbPath = dbPath
	return srv, nil
}

// RegisterTools registers every tool the server supports. list_history is only
// registered when a history database is open.
func (s *EpochMCPServer) RegisterTools() []string {
	RegisterPingTool(s.mcpServer)
	RegisterConvertEpochTool(s.mcpServer, s.log, s.db, s.loc)
	RegisterCurrentTimeTool(s.mcpServer, time.Now, s.loc)
	names := []string{"ping", "convert_epoch", "current_time"}

	if s.db != nil {
		RegisterListHistoryTool(s.mcpServer, s.db)
		names = append(names, "list_history")
	}
	return names
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *EpochMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the history database, or nil when history is disabled.
func (s *EpochMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server.
func (s *EpochMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close checkpoints the WAL and closes the history database.
func (s *EpochMCPServer) Close() error {
	if s.db == nil {
		return nil
	}
	// TRUNCATE waits for readers and writes the WAL back into the main file.
	_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
	if err != nil {
		err = fmt.Errorf("wal checkpoint failed: %w", err)
	}
	return multierr.Append(err, s.db.Close())
}
