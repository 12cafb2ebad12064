package main

import (
	"github.com/spf13/cobra"

	"github.com/lucemia/agent-hr/internal/importer"
)

var importYouratorCmd = &cobra.Command{
	Use:   "yourator",
	Short: "Import resume data from a Yourator xlsx export",
	RunE:  runImportYourator,
}

var youratorFile string

func init() {
	importYouratorCmd.Flags().StringVar(&youratorFile, "file", "", "Path to Yourator xlsx export (defaults to ./yourator.xlsx)")

	importCmd.AddCommand(importYouratorCmd)
}

func runImportYourator(cmd *cobra.Command, args []string) error {
	params := importer.Params{}
	if youratorFile != "" {
		params["file"] = youratorFile
	}
	return runSourceImport(cmd, "yourator", params)
}
