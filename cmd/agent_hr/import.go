package main

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucemia/agent-hr/internal/backup"
	"github.com/lucemia/agent-hr/internal/config"
	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/observability"
	"github.com/lucemia/agent-hr/internal/sources"
	"github.com/lucemia/agent-hr/internal/store"
)

// maxEchoedErrors caps how many validation errors are printed in full
// before the remainder is summarized.
const maxEchoedErrors = 10

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import resume data from a source",
	Long:  "Import resume data from a registered source, validate it, and save it to the local database.",
}

var (
	dbPath         string
	skipValidation bool
	backupDir      string
	configPath     string
	verbose        bool
)

func init() {
	importCmd.PersistentFlags().StringVar(&dbPath, "db", "resume.db", "Path to SQLite database file")
	importCmd.PersistentFlags().BoolVar(&skipValidation, "skip-validation", false, "Skip data validation")
	importCmd.PersistentFlags().StringVar(&backupDir, "backup-dir", "backups", "Directory for resume file backups")
	importCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	importCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print a detailed import summary")

	rootCmd.AddCommand(importCmd)
}

// applyConfig overlays config file values onto flags the user did not set
// explicitly. CLI flags always win.
func applyConfig(cmd *cobra.Command) error {
	if configPath == "" {
		return nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !cmd.Flags().Changed("db") && cfg.DBPath != "" {
		dbPath = cfg.DBPath
	}
	if !cmd.Flags().Changed("backup-dir") && cfg.BackupDir != "" {
		backupDir = cfg.BackupDir
	}
	if !cmd.Flags().Changed("skip-validation") && cfg.SkipValidation {
		skipValidation = true
	}
	if !cmd.Flags().Changed("verbose") && cfg.Verbose {
		verbose = true
	}
	return nil
}

func newRegistry() *importer.Registry {
	registry := importer.NewRegistry()
	sources.RegisterAll(registry)
	return registry
}

// runSourceImport is the shared fetch, validate, confirm, save sequence
// behind every import subcommand.
func runSourceImport(cmd *cobra.Command, sourceName string, params importer.Params) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	driver, err := newRegistry().Create(sourceName)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	backupSvc := backup.NewService(backupDir)
	st.SetBackup(backupSvc.Backup)

	cmd.Printf("Importing data from %s...\n", driver.SourceName())

	started := time.Now().UTC()
	result := importer.NewPipeline(driver).Import(cmd.Context(), skipValidation, params)
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	if verbose {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintImportSummary(strings.ToLower(sourceName), result)
		printer.PrintValidationErrors(result.ValidationErrors)
	}

	if len(result.ValidationErrors) > 0 {
		cmd.Printf("Found %d validation errors:\n", len(result.ValidationErrors))
		for _, verr := range result.ValidationErrors[:min(maxEchoedErrors, len(result.ValidationErrors))] {
			cmd.Printf("  Row %d: %s - %s\n", verr.RowIndex, verr.Field, verr.Message)
		}
		if extra := len(result.ValidationErrors) - maxEchoedErrors; extra > 0 {
			cmd.Printf("  ... and %d more errors\n", extra)
		}

		if !skipValidation && !confirm(cmd, "Continue with import despite validation errors?") {
			cmd.Println("Import cancelled.")
			return nil
		}
	}

	cmd.Printf("Validated %d valid records out of %d total records\n",
		len(result.ValidResumes), result.TotalRecords)

	if len(result.ValidResumes) == 0 {
		return fmt.Errorf("no valid records to import")
	}

	saved, err := st.SaveResumes(cmd.Context(), result.ValidResumes)
	if err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	_, err = st.RecordRun(cmd.Context(), store.ImportRun{
		Source:       strings.ToLower(sourceName),
		TotalRecords: result.TotalRecords,
		ValidRecords: len(result.ValidResumes),
		ErrorCount:   len(result.ValidationErrors),
		SavedRecords: saved.Total(),
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to record import run: %w", err)
	}

	cmd.Printf("Successfully imported %d records from %s (%d new, %d updated)\n",
		saved.Total(), driver.SourceName(), saved.New, saved.Updated)

	absPath, err := filepath.Abs(st.Path())
	if err != nil {
		absPath = st.Path()
	}
	cmd.Printf("Database saved to: %s\n", absPath)

	return nil
}

// confirm asks a yes/no question on the command's input stream. Anything
// other than an explicit yes declines.
func confirm(cmd *cobra.Command, question string) bool {
	cmd.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
