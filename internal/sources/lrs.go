package sources

import (
	"context"

	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/sheets"
	"github.com/lucemia/agent-hr/internal/types"
)

// lrsSpreadsheetID is the sheet the LRS agency fills in, one worksheet per
// position they recruit for.
const lrsSpreadsheetID = "1mGpl2LzdXZlrKYXatWdAKQrI5SsagjTEen58xtjDNms"

// LRSDriver imports resumes from the LRS agency spreadsheet. Column names
// are Chinese; the interview decision lives in a single marker column.
type LRSDriver struct {
	fetcher       SpreadsheetFetcher
	spreadsheetID string
}

// NewLRS constructs the LRS driver against the live spreadsheet.
func NewLRS() importer.Driver {
	return &LRSDriver{spreadsheetID: lrsSpreadsheetID}
}

// SourceName implements importer.Driver.
func (d *LRSDriver) SourceName() string { return "LRS" }

// FieldMapping implements importer.Driver.
func (d *LRSDriver) FieldMapping() map[string]string {
	return map[string]string{
		"position_applied": "position_applied", // stamped from the worksheet title
		"編號":               "source_id",
		"名字":               "full_name",
		"作答email":          "email",
		"履歷":               "resume_file",
		"補充說明By LRS":      "recruiter_notes",
		"測驗結果":             "test_url",
		"筆試分數":             "test_score",
		"是否約面":             "interview_status",
		"補充說明 By集雅":        "hr_notes",
	}
}

// FetchData pulls every non-empty worksheet of the LRS spreadsheet into one
// table, stamping each row's position from its worksheet title.
func (d *LRSDriver) FetchData(ctx context.Context, params importer.Params) (*importer.Table, error) {
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
func (d *LRSDriver) Transform(row importer.Row) importer.Row {
	if marker, ok := stringCell(row, "interview_status"); ok {
		switch marker {
		case "是", "約面", "YES", "yes":
			row["interview_status"] = types.InterviewScheduled
		case "否", "NO", "no":
			row["interview_status"] = types.InterviewNotScheduled
		default:
			row["interview_status"] = types.InterviewPending
		}
	}
	return normalizeCommon(row)
}
