package sources

import (
	"context"
	"encoding/csv"
	"os"
	"strings"

	"github.com/lucemia/agent-hr/internal/importer"
)

// CSVDriver imports resumes from a local delimited file using common
// English column names. It carries no locale-specific status mapping.
type CSVDriver struct{}

// NewCSV constructs the generic delimited-file driver.
func NewCSV() importer.Driver {
	return &CSVDriver{}
}

// SourceName implements importer.Driver.
func (d *CSVDriver) SourceName() string { return "CSV" }

// FieldMapping implements importer.Driver. Both short and canonical column
// spellings are accepted.
func (d *CSVDriver) FieldMapping() map[string]string {
	return map[string]string{
		"id":                 "source_id",
		"name":               "full_name",
		"full_name":          "full_name",
		"email":              "email",
		"phone":              "phone",
		"resume":             "resume_file",
		"resume_file":        "resume_file",
		"position":           "position_applied",
		"position_applied":   "position_applied",
		"test_score":         "test_score",
		"test_url":           "test_url",
		"interview_status":   "interview_status",
		"application_status": "application_status",
		"recruiter_notes":    "recruiter_notes",
		"hr_notes":           "hr_notes",
		"technical_notes":    "technical_notes",
		"skills":             "skills",
		"experience":         "years_experience",
		"years_experience":   "years_experience",
	}
}

// FetchData reads the delimited file named by the "file" parameter.
func (d *CSVDriver) FetchData(ctx context.Context, params importer.Params) (*importer.Table, error) {
	path := params.Get("file", "")
	if path == "" {
		return nil, &importer.FetchError{Source: d.SourceName(), Message: "no file path provided"}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &importer.FetchError{
			Source:  d.SourceName(),
			Message: "CSV file not found: " + path,
			Cause:   err,
		}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &importer.FetchError{
			Source:  d.SourceName(),
			Message: "failed to read CSV file: " + path,
			Cause:   err,
		}
	}
	if len(records) == 0 {
		return &importer.Table{}, nil
	}

	header := records[0]
	// Exported sheets often lead with a byte-order mark.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	cells := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		cells = append(cells, row)
	}

	return importer.NewTable(header, cells), nil
}

// Transform implements importer.Driver: identifier stringification and
// blank-to-nil only.
func (d *CSVDriver) Transform(row importer.Row) importer.Row {
	return normalizeCommon(row)
}
