package main

import (
	"github.com/spf13/cobra"
)

var importCakeCmd = &cobra.Command{
	Use:   "cake",
	Short: "Import resume data from the Cake recruiting spreadsheet",
	RunE:  runImportCake,
}

func init() {
	importCmd.AddCommand(importCakeCmd)
}

func runImportCake(cmd *cobra.Command, args []string) error {
	return runSourceImport(cmd, "cake", nil)
}
