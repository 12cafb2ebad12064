package sources

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/types"
)

func TestYourator_DateParsing(t *testing.T) {
	driver := &YouratorDriver{}

	row := driver.Transform(importer.Row{"application_date": "2025-05-05 16:38:29"})
	require.IsType(t, time.Time{}, row["application_date"])
	assert.True(t, time.Date(2025, 5, 5, 16, 38, 29, 0, time.UTC).Equal(row["application_date"].(time.Time)))

	row = driver.Transform(importer.Row{"application_date": "invalid-date"})
	assert.Nil(t, row["application_date"])

	row = driver.Transform(importer.Row{"application_date": nil})
	assert.Nil(t, row["application_date"])
}

func TestYourator_StatusWords(t *testing.T) {
	tests := []struct {
		status any
		want   any
	}{
		{"待審核", types.StatusApplied},
		{"pending", types.StatusApplied},
		{"submitted", types.StatusApplied},
		{"審核中", types.StatusScreening},
		{"reviewing", types.StatusScreening},
		{"面試", types.StatusInterview},
		{"interviewing", types.StatusInterview},
		{"錄取", types.StatusHired},
		{"accepted", types.StatusHired},
		{"拒絕", types.StatusRejected},
		{"declined", types.StatusRejected},
		{"something new", types.StatusApplied}, // unrecognized defaults to applied
		{nil, nil},
	}

	driver := &YouratorDriver{}
	for _, tt := range tests {
		row := driver.Transform(importer.Row{"application_status": tt.status})
		assert.Equal(t, tt.want, row["application_status"], "status %v", tt.status)
	}
}

func TestYourator_PhoneCleanup(t *testing.T) {
	tests := []struct {
		phone any
		want  any
	}{
		{"(510) 918-5299", "5109185299"},
		{"0912-345-678", "0912345678"},
		{"()- ", nil},
		{nil, nil},
	}

	driver := &YouratorDriver{}
	for _, tt := range tests {
		row := driver.Transform(importer.Row{"phone": tt.phone})
		assert.Equal(t, tt.want, row["phone"], "phone %v", tt.phone)
	}
}

func TestYourator_FetchMissingFile(t *testing.T) {
	driver := &YouratorDriver{filePath: "./does-not-exist.xlsx"}

	_, err := driver.FetchData(context.Background(), nil)
	require.Error(t, err)

	var fetchErr *importer.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Yourator", fetchErr.Source)
}

func TestYourator_TransformThroughPipelineRow(t *testing.T) {
	driver := &YouratorDriver{}
	row := driver.Transform(importer.Row{
		"source_id":          20250505.0,
		"full_name":          "林小明",
		"email":              "ming@example.com",
		"phone":              "(02) 2345-6789",
		"application_date":   "2025-05-05 16:38:29",
		"application_status": "待審核",
	})

	assert.Equal(t, "20250505", row["source_id"])
	assert.Equal(t, "0223456789", row["phone"])
	assert.Equal(t, types.StatusApplied, row["application_status"])
}
