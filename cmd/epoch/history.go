package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/unowned-ai/epoch/pkg/history"
	"github.com/unowned-ai/epoch/pkg/timestamps"
)

var (
	historyLimitFlag int
	historyYesFlag   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved conversions",
	Long:  `List, inspect and delete conversions saved with --record, the TUI or the MCP server.`,
}

var listHistoryCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		records, err := history.List(cmd.Context(), dbConn, historyLimitFlag)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No conversions saved yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s | %-20s | %-13s | %-35s | %s\n", "ID", "Input", "Unit", "UTC", "Saved At")
		fmt.Fprintf(out, "%s\n", "--------------------------------------------------------------------------------------------------------------------------------")
		for _, record := range records {
			fmt.Fprintf(out, "%-36s | %-20s | %-13s | %-35s | %s\n",
				record.ID,
				record.Input,
				record.Unit,
				timestamps.FormatRFC3339(record.Time()),
				formatTimestamp(record.CreatedAt),
			)
		}
		return nil
	},
}

var getHistoryCmd = &cobra.Command{
	Use:   "get [record-id]",
	Short: "Show a saved conversion by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid record ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		record, err := history.Get(cmd.Context(), dbConn, recordID)
		if err != nil {
			return fmt.Errorf("failed to get record %s: %w", args[0], err)
		}
		return printRecord(cmd.OutOrStdout(), record)
	},
}

var deleteHistoryCmd = &cobra.Command{
	Use:   "delete [record-id]",
	Short: "Delete a saved conversion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid record ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		if err := history.Delete(cmd.Context(), dbConn, recordID); err != nil {
			return fmt.Errorf("failed to delete record %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Record %s deleted.\n", recordID)
		return nil
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved conversion",
	Long:  `Removes all saved conversions. Requires --yes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !historyYesFlag {
			return errors.New("refusing to clear history without --yes")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		count, err := history.Clear(cmd.Context(), dbConn)
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logger.Debugw("cleared history", "count", count)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d conversions.\n", count)
		return nil
	},
}

// printRecord writes the record followed by the same report the root command prints.
func printRecord(w io.Writer, record history.Record) error {
	fmt.Fprintf(w, "ID:         %s\n", record.ID)
	fmt.Fprintf(w, "Input:      %s\n", record.Input)
	fmt.Fprintf(w, "Saved At:   %s\n", formatTimestamp(record.CreatedAt))
	fmt.Fprintf(w, "Assuming %s\n", record.Unit)
	return timestamps.WriteReport(w, record.Time(), localZone)
}

func initHistoryCmd() {
	listHistoryCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Maximum number of conversions to show (0 for all)")
	clearHistoryCmd.Flags().BoolVarP(&historyYesFlag, "yes", "y", false, "Confirm deleting all conversions")

	historyCmd.AddCommand(listHistoryCmd, getHistoryCmd, deleteHistoryCmd, clearHistoryCmd)
}
