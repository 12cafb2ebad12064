package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/types"
)

func TestLRS_InterviewMarkerTokens(t *testing.T) {
	tests := []struct {
		marker any
		want   any
	}{
		{"是", types.InterviewScheduled},
		{"約面", types.InterviewScheduled},
		{"YES", types.InterviewScheduled},
		{"yes", types.InterviewScheduled},
		{"否", types.InterviewNotScheduled},
		{"NO", types.InterviewNotScheduled},
		{"no", types.InterviewNotScheduled},
		{"下週再說", types.InterviewPending},
		{nil, nil},
	}

	driver := &LRSDriver{}
	for _, tt := range tests {
		row := driver.Transform(importer.Row{"interview_status": tt.marker})
		assert.Equal(t, tt.want, row["interview_status"], "marker %v", tt.marker)
	}
}

func TestLRS_SourceIDStringified(t *testing.T) {
	driver := &LRSDriver{}
	row := driver.Transform(importer.Row{"source_id": 1.0})
	assert.Equal(t, "1", row["source_id"])
}

func TestLRS_BlankValuesBecomeNil(t *testing.T) {
	driver := &LRSDriver{}
	row := driver.Transform(importer.Row{"recruiter_notes": "   "})
	assert.Nil(t, row["recruiter_notes"])
}

func TestLRS_FullPipeline(t *testing.T) {
	fake := &fakeFetcher{table: importer.NewTable(
		[]string{"position_applied", "編號", "名字", "作答email", "筆試分數", "是否約面"},
		[][]any{
			{"資料工程師", 1.0, "張三", "zhang.san@example.com", 85.0, "是"},
			{"資料工程師", 2.0, "李四", "li.si@example.com", 92.0, "約面"},
			{"資料工程師", 3.0, "王五", "wang.wu@example.com", 78.0, "否"},
		},
	)}
	driver := &LRSDriver{fetcher: fake, spreadsheetID: "sheet-id"}

	result := importer.NewPipeline(driver).Import(context.Background(), false, nil)

	require.True(t, result.Success)
	require.Len(t, result.ValidResumes, 3)
	assert.Empty(t, result.ValidationErrors)
	assert.Equal(t, 3, result.TotalRecords)

	first := result.ValidResumes[0]
	assert.Equal(t, "1", *first.SourceID)
	assert.Equal(t, "lrs", *first.Source)
	assert.Equal(t, types.InterviewScheduled, *first.InterviewStatus)
	assert.Equal(t, 85.0, *first.TestScore)
	assert.Equal(t, "資料工程師", *first.PositionApplied)

	assert.Equal(t, types.InterviewNotScheduled, *result.ValidResumes[2].InterviewStatus)
}
