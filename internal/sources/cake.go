package sources

import (
	"context"
	"strconv"
	"strings"

	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/sheets"
	"github.com/lucemia/agent-hr/internal/types"
)

// cakeSpreadsheetID is the recruiting sheet the Cake team maintains, one
// worksheet per open position.
const cakeSpreadsheetID = "1hinp7M0dyMdL6bnoq4hRv4iHuwa9CuZzd8Xs8pdwoOo"

// SpreadsheetFetcher is the slice of the sheets client the drivers need.
type SpreadsheetFetcher interface {
	FetchSpreadsheet(ctx context.Context, spreadsheetID string, opts sheets.FetchOptions) (*importer.Table, error)
}

// CakeDriver imports resumes from the Cake recruiting spreadsheet. The sheet
// mixes Chinese and English column names, records scores as percentage
// strings, and tracks the interview decision across a primary and a backup
// column.
type CakeDriver struct {
	fetcher       SpreadsheetFetcher
	spreadsheetID string
}

// NewCake constructs the Cake driver against the live spreadsheet.
func NewCake() importer.Driver {
	return &CakeDriver{spreadsheetID: cakeSpreadsheetID}
}

// SourceName implements importer.Driver.
func (d *CakeDriver) SourceName() string { return "Cake" }

// FieldMapping implements importer.Driver.
func (d *CakeDriver) FieldMapping() map[string]string {
	return map[string]string{
		"position_applied": "position_applied", // stamped from the worksheet title
		"名字":               "full_name",
		"email":            "email",
		"分數":               "test_score",
		"測驗結果":             "test_url",
		"履歷":               "resume_file",
		"是否約面":             "interview_status",
		"是否約面.1":           "interview_status_2", // backup column
		"職缺":               "position_applied",
		"補充說明":             "recruiter_notes",
		"Comment":          "hr_notes",
		"FROM":             "source_id",
	}
}

// FetchData pulls every non-empty worksheet of the Cake spreadsheet into one
// table, stamping each row's position from its worksheet title and resolving
// resume cells to the URL behind their display text.
func (d *CakeDriver) FetchData(ctx context.Context, params importer.Params) (*importer.Table, error) {
	fetcher := d.fetcher
	if fetcher == nil {
		client, err := sheets.NewClient(ctx)
		if err != nil {
			return nil, &importer.FetchError{Source: d.SourceName(), Message: "Google Sheets client unavailable", Cause: err}
		}
		fetcher = client
	}

	table, err := fetcher.FetchSpreadsheet(ctx, params.Get("spreadsheet_id", d.spreadsheetID), sheets.FetchOptions{
		HyperlinkColumns: []string{"履歷"},
		PositionColumn:   "position_applied",
	})
	if err != nil {
		return nil, &importer.FetchError{Source: d.SourceName(), Message: "failed to fetch spreadsheet", Cause: err}
	}
	return table, nil
}

// Transform implements importer.Driver.
func (d *CakeDriver) Transform(row importer.Row) importer.Row {
	transformCakeScore(row)
	transformCakeInterview(row)
	return normalizeCommon(row)
}

// transformCakeScore parses percentage-formatted scores ("69%" reads as
// 69.0). Unparsable scores become nil rather than failing the row.
func transformCakeScore(row importer.Row) {
	score, ok := stringCell(row, "test_score")
	if !ok {
		return
	}

	score = strings.TrimSuffix(score, "%")
	value, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil {
		row["test_score"] = nil
		return
	}
	row["test_score"] = value
}

// transformCakeInterview derives the interview status from the primary
// column, falling back to the backup column, and always drops the backup
// from the output row.
func transformCakeInterview(row importer.Row) {
	marker := row["interview_status"]
	if marker == nil {
		marker = row["interview_status_2"]
	}
	delete(row, "interview_status_2")

	if marker == nil {
		return
	}

	switch v := marker.(type) {
	case bool:
		if v {
			row["interview_status"] = types.InterviewScheduled
		} else {
			row["interview_status"] = types.InterviewNotScheduled
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "是", "約面":
			row["interview_status"] = types.InterviewScheduled
		case "false", "no", "否":
			row["interview_status"] = types.InterviewNotScheduled
		case "":
			row["interview_status"] = nil
		default:
			row["interview_status"] = types.InterviewPending
		}
	default:
		row["interview_status"] = types.InterviewPending
	}
}
