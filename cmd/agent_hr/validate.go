package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucemia/agent-hr/internal/importer"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate source data without importing",
	Long:  "Fetch and validate resume data from a registered source, print a validation summary, and discard the records.",
	RunE:  runValidate,
}

var validateSource string

func init() {
	validateCmd.Flags().StringVar(&validateSource, "source", "lrs", "Source to validate (cake, lrs, yourator, csv)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	driver, err := newRegistry().Create(validateSource)
	if err != nil {
		return err
	}

	cmd.Printf("Validating data from %s...\n", driver.SourceName())

	result := importer.NewPipeline(driver).Import(cmd.Context(), false, importer.Params{})
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	cmd.Println("\nValidation Summary:")
	cmd.Printf("  Total records: %d\n", result.TotalRecords)
	cmd.Printf("  Valid records: %d\n", len(result.ValidResumes))
	cmd.Printf("  Invalid records: %d\n", result.TotalRecords-len(result.ValidResumes))
	cmd.Printf("  Validation errors: %d\n", len(result.ValidationErrors))

	if len(result.ValidationErrors) == 0 {
		cmd.Println("\nAll data is valid!")
		return nil
	}

	cmd.Println("\nValidation Errors:")
	for _, verr := range result.ValidationErrors {
		cmd.Printf("  Row %d: %s - %s\n", verr.RowIndex, verr.Field, verr.Message)
	}

	return nil
}
