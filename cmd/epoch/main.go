package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	epoch "github.com/unowned-ai/epoch/pkg"
	pkgdb "github.com/unowned-ai/epoch/pkg/db"
	"github.com/unowned-ai/epoch/pkg/history"
	"github.com/unowned-ai/epoch/pkg/logging"
	"github.com/unowned-ai/epoch/pkg/timestamps"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose          bool
	recordConversion bool

	// localZone is the zone used for the "Local:" line.
	localZone = time.Local

	logger = zap.NewNop().Sugar()
)

var rootCmd = &cobra.Command{
	Use:   "epoch <value>",
	Short: "Convert an epoch value to a date-time, inferring its unit.",
	Long: `Converts a Unix epoch value to a calendar date-time and prints it in UTC and in the
local timezone. The unit is inferred from the magnitude of the value:

  below 10^10   seconds
  below 10^13   milli-seconds
  below 10^16   micro-seconds
  otherwise     nano-seconds

Negative values must follow "--", e.g. epoch -- -86400.`,
	Example: `  epoch 1630779114
  epoch 1630779114123456789
  epoch --record 1630779114123`,
	Version:       fmt.Sprintf("v%s", epoch.Version),
	Args:          exactlyOneEpoch,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		input := args[0]

		parsed, ok := timestamps.TryParse(input)
		if !ok {
			logger.Debugw("input is not an integer", "input", input)
			fmt.Fprintln(out, "Failed to parse argument")
			return nil
		}
		logger.Debugw("classified epoch", "input", input, "unit", parsed.Unit, "seconds", parsed.Seconds, "nanos", parsed.Nanos)

		fmt.Fprintf(out, "Assuming %s\n", parsed.Unit)
		if err := timestamps.WriteReport(out, parsed.Time(), localZone); err != nil {
			return err
		}

		if !recordConversion {
			return nil
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		record, err := history.Save(cmd.Context(), dbConn, input, parsed)
		if err != nil {
			return fmt.Errorf("failed to save conversion: %w", err)
		}
		logger.Debugw("saved conversion", "id", record.ID)
		return nil
	},
}

func exactlyOneEpoch(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected 1 argument got %d", len(args))
	}
	return nil
}

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the current time",
	Long:  `Prints the current time in UTC and in the local timezone, followed by its epoch in seconds and milliseconds.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return timestamps.WriteReport(cmd.OutOrStdout(), time.Now(), localZone)
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for epoch.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(epoch completion bash)

  Zsh:
    $ epoch completion zsh > "${fpath[1]}/_epoch"

  Fish:
    $ epoch completion fish > ~/.config/fish/completions/epoch.fish

  PowerShell:
    PS> epoch completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of epoch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), epoch.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the history database",
	Long:  `Provides commands for managing the SQLite database that stores conversion history.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Create or upgrade the history database schema",
	Long: `Connects to the SQLite database at the specified path (--db, or the platform default)
and brings the historydb component up to the schema version of this binary. A missing or
empty database is created and initialized.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		version, err := pkgdb.GetComponentSchemaVersion(dbConn, pkgdb.HistoryDBComponent)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Component %s is at schema version %d (WAL: %t, Sync: %s)\n", pkgdb.HistoryDBComponent, version, walMode, syncMode)
		return nil
	},
}

func initCmd() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the history database file (uses a system-specific default if not provided)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", false, "Enable SQLite WAL (Write-Ahead Logging) mode")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "FULL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug diagnostics to stderr")

	rootCmd.Flags().BoolVar(&recordConversion, "record", false, "Save the conversion to the history database")

	dbCmd.AddCommand(dbUpgradeCmd)

	initHistoryCmd()
	initMCPCmd()
	rootCmd.AddCommand(nowCmd, completionCmd, versionCmd, dbCmd, historyCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
