package main

import (
	"github.com/spf13/cobra"
)

var importLRSCmd = &cobra.Command{
	Use:   "lrs",
	Short: "Import resume data from the LRS recruiting spreadsheet",
	RunE:  runImportLRS,
}

func init() {
	importCmd.AddCommand(importLRSCmd)
}

func runImportLRS(cmd *cobra.Command, args []string) error {
	return runSourceImport(cmd, "lrs", nil)
}
