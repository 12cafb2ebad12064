package sources

import (
	"context"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lucemia/agent-hr/internal/importer"
	"github.com/lucemia/agent-hr/internal/types"
)

// defaultYouratorFile is where the platform's applicant export lands.
const defaultYouratorFile = "./yourator.xlsx"

// youratorDateLayout matches the export's timestamp strings.
const youratorDateLayout = "2006-01-02 15:04:05"

// YouratorDriver imports resumes from a Yourator platform export file. The
// export carries Chinese column names, bilingual status words, and
// formatted phone numbers.
type YouratorDriver struct {
	filePath string
}

// NewYourator constructs the Yourator export driver.
func NewYourator() importer.Driver {
	return &YouratorDriver{filePath: defaultYouratorFile}
}

// SourceName implements importer.Driver.
func (d *YouratorDriver) SourceName() string { return "Yourator" }

// FieldMapping implements importer.Driver. Education and work-experience
// summaries ride along in the technical and HR note fields.
func (d *YouratorDriver) FieldMapping() map[string]string {
	return map[string]string{
		"投遞編號":  "source_id",
		"求職者姓名": "full_name",
		"求職者信箱": "email",
		"求職者電話": "phone",
		"職位名稱":  "position_applied",
		"投遞時間":  "application_date",
		"投遞狀態":  "application_status",
		"履歷連結":  "resume_file",
		"簡介":    "recruiter_notes",
		"學歷一":   "technical_notes",
		"工作經歷一":  "hr_notes",
	}
}

// FetchData reads the export workbook's first worksheet. The "file"
// parameter overrides the default path.
func (d *YouratorDriver) FetchData(ctx context.Context, params importer.Params) (*importer.Table, error) {
	path := params.Get("file", d.filePath)

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &importer.FetchError{
			Source:  d.SourceName(),
			Message: "Excel file not found or unreadable: " + path,
			Cause:   err,
		}
	}
	defer workbook.Close()

	sheetName := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		return nil, &importer.FetchError{
			Source:  d.SourceName(),
			Message: "failed to read worksheet " + sheetName,
			Cause:   err,
		}
	}
	if len(rows) == 0 {
		return &importer.Table{}, nil
	}

	cells := make([][]any, 0, len(rows)-1)
	for _, record := range rows[1:] {
		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		cells = append(cells, row)
	}

	return importer.NewTable(rows[0], cells), nil
}

// Transform implements importer.Driver.
func (d *YouratorDriver) Transform(row importer.Row) importer.Row {
	transformYouratorDate(row)
	transformYouratorStatus(row)
	transformYouratorPhone(row)
	return normalizeCommon(row)
}

// transformYouratorDate parses the export's fixed-format submission
// timestamp; unparsable values become nil.
func transformYouratorDate(row importer.Row) {
	value, ok := row["application_date"]
	if !ok || value == nil {
		return
	}
	s, isString := value.(string)
	if !isString {
		if _, isTime := value.(time.Time); isTime {
			return
		}
		row["application_date"] = nil
		return
	}

	parsed, err := time.Parse(youratorDateLayout, strings.TrimSpace(s))
	if err != nil {
		row["application_date"] = nil
		return
	}
	row["application_date"] = parsed
}

// transformYouratorStatus maps the platform's bilingual status words onto
// the application-status enum. Unrecognized non-blank values default to
// applied.
func transformYouratorStatus(row importer.Row) {
	status, ok := stringCell(row, "application_status")
	if !ok {
		return
	}

	switch status {
	case "待審核", "pending", "submitted":
		row["application_status"] = types.StatusApplied
	case "審核中", "reviewing", "screening":
		row["application_status"] = types.StatusScreening
	case "面試", "interview", "interviewing":
		row["application_status"] = types.StatusInterview
	case "錄取", "hired", "accepted":
		row["application_status"] = types.StatusHired
	case "拒絕", "rejected", "declined":
		row["application_status"] = types.StatusRejected
	default:
		row["application_status"] = types.StatusApplied
	}
}

// transformYouratorPhone strips common phone punctuation; a value that was
// nothing but punctuation becomes nil.
func transformYouratorPhone(row importer.Row) {
	phone, ok := stringCell(row, "phone")
	if !ok {
		return
	}

	replacer := strings.NewReplacer("(", "", ")", "", "-", "", " ", "")
	cleaned := replacer.Replace(phone)
	if cleaned == "" {
		row["phone"] = nil
		return
	}
	row["phone"] = cleaned
}
