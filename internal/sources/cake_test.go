package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/sheets"
	"github.com/lucemia/agent-hr/internal/types"
)

// fakeFetcher plays the sheets client for driver tests.
type fakeFetcher struct {
	table  *importer.Table
	err    error
	gotID  string
	gotOpt sheets.FetchOptions
}

func (f *fakeFetcher) FetchSpreadsheet(ctx context.Context, spreadsheetID string, opts sheets.FetchOptions) (*importer.Table, error) {
	f.gotID = spreadsheetID
	f.gotOpt = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func TestCake_ScorePercentage(t *testing.T) {
	tests := []struct {
		name  string
		score any
		want  any
	}{
		{"percentage string", "69%", 69.0},
		{"plain number string", "87", 87.0},
		{"decimal percentage", "66.5%", 66.5},
		{"bare percent sign", "%", nil},
		{"unparsable", "invalid", nil},
	}

	driver := &CakeDriver{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := driver.Transform(importer.Row{"test_score": tt.score})
			assert.Equal(t, tt.want, row["test_score"])
		})
	}
}

func TestCake_InterviewMarkerTokens(t *testing.T) {
	tests := []struct {
		marker any
		want   any
	}{
		{true, types.InterviewScheduled},
		{false, types.InterviewNotScheduled},
		{"True", types.InterviewScheduled},
		{"False", types.InterviewNotScheduled},
		{"是", types.InterviewScheduled},
		{"約面", types.InterviewScheduled},
		{"true", types.InterviewScheduled},
		{"yes", types.InterviewScheduled},
		{"否", types.InterviewNotScheduled},
		{"no", types.InterviewNotScheduled},
		{"maybe next week", types.InterviewPending},
		{nil, nil},
	}

	driver := &CakeDriver{}
	for _, tt := range tests {
		row := driver.Transform(importer.Row{"interview_status": tt.marker})
		assert.Equal(t, tt.want, row["interview_status"], "marker %v", tt.marker)
	}
}

func TestCake_BackupMarkerColumn(t *testing.T) {
	driver := &CakeDriver{}

	// Primary empty, backup decides.
	row := driver.Transform(importer.Row{
		"interview_status":   nil,
		"interview_status_2": "yes",
	})
	assert.Equal(t, types.InterviewScheduled, row["interview_status"])
	assert.NotContains(t, row, "interview_status_2")

	// Primary wins over backup.
	row = driver.Transform(importer.Row{
		"interview_status":   "no",
		"interview_status_2": "yes",
	})
	assert.Equal(t, types.InterviewNotScheduled, row["interview_status"])
	assert.NotContains(t, row, "interview_status_2")

	// Backup never survives even when unused.
	row = driver.Transform(importer.Row{"interview_status_2": nil})
	assert.NotContains(t, row, "interview_status_2")
}

func TestCake_SourceIDStringified(t *testing.T) {
	driver := &CakeDriver{}
	row := driver.Transform(importer.Row{"source_id": 42.0})
	assert.Equal(t, "42", row["source_id"])
}

func TestCake_FetchUsesSheetStampAndResumeLinks(t *testing.T) {
	fake := &fakeFetcher{table: importer.NewTable(
		[]string{"position_applied", "名字", "email"},
		[][]any{{"後端工程師", "Tony Xiao", "tony@example.com"}},
	)}
	driver := &CakeDriver{fetcher: fake, spreadsheetID: "sheet-id"}

	table, err := driver.FetchData(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "sheet-id", fake.gotID)
	assert.Equal(t, []string{"履歷"}, fake.gotOpt.HyperlinkColumns)
	assert.Equal(t, "position_applied", fake.gotOpt.PositionColumn)
}

func TestCake_FetchFailureWrapped(t *testing.T) {
	fake := &fakeFetcher{err: errors.New("403 forbidden")}
	driver := &CakeDriver{fetcher: fake, spreadsheetID: "sheet-id"}

	_, err := driver.FetchData(context.Background(), nil)
	require.Error(t, err)

	var fetchErr *importer.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Cake", fetchErr.Source)
	assert.Contains(t, err.Error(), "403 forbidden")
}

func TestCake_FullPipeline(t *testing.T) {
	fake := &fakeFetcher{table: importer.NewTable(
		[]string{"position_applied", "名字", "email", "分數", "是否約面", "是否約面.1", "FROM"},
		[][]any{
			{"後端工程師", "Tony Xiao", "tony@example.com", "87%", "True", "", "cake"},
			{"後端工程師", "Vanna Chen", "vanna@example.com", "67%", "", "no", "cake"},
		},
	)}
	driver := &CakeDriver{fetcher: fake, spreadsheetID: "sheet-id"}

	result := importer.NewPipeline(driver).Import(context.Background(), false, nil)

	require.True(t, result.Success)
	require.Len(t, result.ValidResumes, 2)
	assert.Empty(t, result.ValidationErrors)

	tony := result.ValidResumes[0]
	assert.Equal(t, "tony@example.com", *tony.Email)
	assert.Equal(t, 87.0, *tony.TestScore)
	assert.Equal(t, types.InterviewScheduled, *tony.InterviewStatus)
	assert.Equal(t, "後端工程師", *tony.PositionApplied)
	assert.Equal(t, "cake", *tony.Source)

	vanna := result.ValidResumes[1]
	assert.Equal(t, types.InterviewNotScheduled, *vanna.InterviewStatus)
}
