package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lucemia/agent-hr/internal/store"
	"github.com/lucemia/agent-hr/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display resume records from the database",
	RunE:  runShow,
}

var (
	showDBPath string
	showLimit  int
	showSource string
)

func init() {
	showCmd.Flags().StringVar(&showDBPath, "db", "resume.db", "Path to SQLite database file")
	showCmd.Flags().IntVar(&showLimit, "limit", 10, "Number of rows to display")
	showCmd.Flags().StringVar(&showSource, "source", "", "Filter by source (cake, lrs, yourator, csv)")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(showDBPath); err != nil {
		return fmt.Errorf("database file not found: %s", showDBPath)
	}

	st, err := store.Open(showDBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	resumes, err := st.GetResumes(cmd.Context(), showLimit, showSource)
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}

	filterMsg := ""
	if showSource != "" {
		filterMsg = fmt.Sprintf(" (filtered by source: %s)", showSource)
	}

	if len(resumes) == 0 {
		cmd.Printf("No resume records found in the database%s.\n", filterMsg)
		return nil
	}

	total, err := st.CountResumes(cmd.Context(), showSource)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	cmd.Printf("Showing first %d of %d resume records%s:\n", len(resumes), total, filterMsg)

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"ID", "Name", "Email", "Position", "Score", "Interview", "Status", "Source", "Created"})
	for _, r := range resumes {
		tw.AppendRow(table.Row{
			derefInt64(r.ID),
			derefString(r.FullName),
			derefString(r.Email),
			derefString(r.PositionApplied),
			formatScore(r.TestScore),
			formatInterview(r.InterviewStatus),
			formatApplication(r.ApplicationStatus),
			derefString(r.Source),
			formatDate(r.CreatedAt),
		})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()

	return nil
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt64(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}

func formatInterview(v *types.InterviewStatus) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func formatApplication(v *types.ApplicationStatus) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

func formatDate(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
