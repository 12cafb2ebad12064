package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucemia/agent-hr/internal/store"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Remove duplicate resume records",
	Long:  "Remove duplicate records sharing the same (email, source) pair, keeping the most recently updated row in each group.",
	RunE:  runDedupe,
}

var dedupeDBPath string

func init() {
	dedupeCmd.Flags().StringVar(&dedupeDBPath, "db", "resume.db", "Path to SQLite database file")

	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(dedupeDBPath); err != nil {
		return fmt.Errorf("database file not found: %s", dedupeDBPath)
	}

	st, err := store.Open(dedupeDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	removed, err := st.RemoveDuplicates(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to remove duplicates: %w", err)
	}

	if removed == 0 {
		cmd.Println("No duplicate records found.")
		return nil
	}
	cmd.Printf("Removed %d duplicate records.\n", removed)

	return nil
}
