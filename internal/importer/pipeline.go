package importer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lucemia/agent-hr/internal/types"
)

// Result reports the outcome of one import run.
type Result struct {
	Success          bool
	ValidResumes     []*types.Resume
	ValidationErrors []types.ValidationError
	TotalRecords     int
	Message          string
}

// Pipeline runs the fetch, transform, validate sequence for one driver.
type Pipeline struct {
	driver Driver
}

// NewPipeline wraps a driver in the shared import sequence.
func NewPipeline(driver Driver) *Pipeline {
	return &Pipeline{driver: driver}
}

// Driver exposes the wrapped driver.
func (p *Pipeline) Driver() Driver {
	return p.driver
}

// Transform renames raw columns to canonical resume field names using the
// driver's mapping. Only columns present in both the raw table and the
// mapping survive; everything else is dropped. Cell values keep the table's
// nil normalization for missing data.
func (p *Pipeline) Transform(raw *Table) *Table {
	mapping := p.driver.FieldMapping()

	// Resolve each canonical field to exactly one source column; when two
	// source columns map to the same field, the first in column order wins.
	type rename struct {
		source, target string
	}
	var renames []rename
	out := &Table{}
	seen := map[string]bool{}
	for _, col := range raw.Columns {
		target, ok := mapping[col]
		if !ok || seen[target] {
			continue
		}
		seen[target] = true
		out.Columns = append(out.Columns, target)
		renames = append(renames, rename{source: col, target: target})
	}

	for _, row := range raw.Rows {
		canonical := make(Row, len(out.Columns))
		for _, r := range renames {
			canonical[r.target] = normalizeCell(row[r.source])
		}
		out.Rows = append(out.Rows, canonical)
	}

	return out
}

// Validate walks the canonical table in source order, stamps provenance,
// applies the driver's transforms, and constructs a resume per row.
//
// A row whose construction fails yields a ValidationError and is excluded.
// A row that constructs but lacks a name or email is excluded silently: an
// incomplete record is not an invalid one.
func (p *Pipeline) Validate(canonical *Table) ([]*types.Resume, []types.ValidationError) {
	var valid []*types.Resume
	var errs []types.ValidationError

	source := strings.ToLower(p.driver.SourceName())

	for i, row := range canonical.Rows {
		prepared := row.Clone()
		prepared["source"] = source
		prepared = p.driver.Transform(prepared)

		resume, err := types.NewResume(prepared)
		if err != nil {
			errs = append(errs, types.ValidationError{
				RowIndex: i,
				Field:    "general",
				Message:  err.Error(),
				RawValue: renderRow(prepared),
			})
			continue
		}

		if resume.IsComplete() {
			valid = append(valid, resume)
		}
	}

	return valid, errs
}

// Import runs the complete sequence: fetch, transform, then either full
// validation or unvalidated construction. Fetch and transform failures are
// reported through the result, never propagated.
func (p *Pipeline) Import(ctx context.Context, skipValidation bool, params Params) *Result {
	raw, err := p.driver.FetchData(ctx, params)
	if err != nil {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Failed to import from %s: %v", p.driver.SourceName(), err),
		}
	}

	canonical := p.Transform(raw)

	var valid []*types.Resume
	var errs []types.ValidationError

	if skipValidation {
		// Construct every row, silently dropping the ones that fail and
		// keeping incomplete records.
		source := strings.ToLower(p.driver.SourceName())
		for _, row := range canonical.Rows {
			prepared := row.Clone()
			prepared["source"] = source
			prepared = p.driver.Transform(prepared)

			resume, rowErr := types.NewResume(prepared)
			if rowErr != nil {
				continue
			}
			valid = append(valid, resume)
		}
	} else {
		valid, errs = p.Validate(canonical)
	}

	return &Result{
		Success:          true,
		ValidResumes:     valid,
		ValidationErrors: errs,
		TotalRecords:     raw.Len(),
		Message:          fmt.Sprintf("Successfully processed %d records from %s", len(valid), p.driver.SourceName()),
	}
}

// renderRow formats a row for a ValidationError's raw value with stable key
// order so error output is reproducible.
func renderRow(row Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", k, row[k])
	}
	sb.WriteString("}")
	return sb.String()
}
