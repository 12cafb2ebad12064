// Package main provides the agent_hr CLI for importing candidate
// applications from recruiting sources into a local resume database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agent_hr",
	Short: "Candidate application import tool",
	Long:  "agent_hr imports candidate applications from recruiting platforms (Cake, LRS, Yourator) and local CSV exports, normalizes them into one record shape, and stores them in a local SQLite database with per-source deduplication.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
