package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucemia/agent-hr/internal/importer"
)

var importCSVCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Import resume data from a local CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCSV,
}

func init() {
	importCmd.AddCommand(importCSVCmd)
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("CSV file not found: %s", filePath)
	}

	return runSourceImport(cmd, "csv", importer.Params{"file": filePath})
}
