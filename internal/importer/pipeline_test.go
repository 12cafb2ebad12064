package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDriver feeds canned tabular data through the pipeline.
type stubDriver struct {
	name     string
	mapping  map[string]string
	table    *Table
	fetchErr error
}

func (d *stubDriver) SourceName() string { return d.name }

func (d *stubDriver) FieldMapping() map[string]string { return d.mapping }

func (d *stubDriver) FetchData(ctx context.Context, params Params) (*Table, error) {
	if d.fetchErr != nil {
		return nil, d.fetchErr
	}
	return d.table, nil
}

func (d *stubDriver) Transform(row Row) Row { return row }

func testDriver(table *Table) *stubDriver {
	return &stubDriver{
		name: "Stub",
		mapping: map[string]string{
			"name":  "full_name",
			"email": "email",
			"score": "test_score",
		},
		table: table,
	}
}

func TestTransform_RenamesMappedColumnsOnly(t *testing.T) {
	raw := NewTable(
		[]string{"name", "email", "internal_ref"},
		[][]any{{"Ann", "ann@example.com", "ref-1"}},
	)

	out := NewPipeline(testDriver(raw)).Transform(raw)

	assert.ElementsMatch(t, []string{"full_name", "email"}, out.Columns)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Ann", out.Rows[0]["full_name"])
	assert.Equal(t, "ann@example.com", out.Rows[0]["email"])
	assert.NotContains(t, out.Rows[0], "internal_ref")
}

func TestTransform_MissingValuesBecomeNil(t *testing.T) {
	raw := NewTable(
		[]string{"name", "email"},
		[][]any{{"Ann", "  "}},
	)

	out := NewPipeline(testDriver(raw)).Transform(raw)

	require.Len(t, out.Rows, 1)
	assert.Nil(t, out.Rows[0]["email"])
}

func TestValidate_IncompleteIsNotAnError(t *testing.T) {
	// Row 0 is complete, row 1 constructs fine but has no name: it must be
	// excluded silently, not reported as a validation error.
	raw := NewTable(
		[]string{"name", "email"},
		[][]any{
			{"A", "a@x.com"},
			{"", "b@x.com"},
		},
	)
	p := NewPipeline(testDriver(raw))

	valid, errs := p.Validate(p.Transform(raw))

	require.Len(t, valid, 1)
	assert.Equal(t, "a@x.com", *valid[0].Email)
	assert.Empty(t, errs)
}

func TestValidate_ConstructionFailureIsReported(t *testing.T) {
	raw := NewTable(
		[]string{"name", "email"},
		[][]any{
			{"A", "a@x.com"},
			{"B", "not-an-email"},
		},
	)
	p := NewPipeline(testDriver(raw))

	valid, errs := p.Validate(p.Transform(raw))

	require.Len(t, valid, 1)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].RowIndex)
	assert.Equal(t, "general", errs[0].Field)
	assert.Contains(t, errs[0].Message, "invalid email format")
	assert.Contains(t, errs[0].RawValue, "not-an-email")
}

func TestValidate_StampsLoweredSource(t *testing.T) {
	raw := NewTable(
		[]string{"name", "email"},
		[][]any{{"A", "a@x.com"}},
	)
	p := NewPipeline(testDriver(raw))

	valid, _ := p.Validate(p.Transform(raw))

	require.Len(t, valid, 1)
	require.NotNil(t, valid[0].Source)
	assert.Equal(t, "stub", *valid[0].Source)
}

func TestImport_FetchFailureNeverPropagates(t *testing.T) {
	driver := testDriver(nil)
	driver.fetchErr = &FetchError{Source: "Stub", Message: "sheet unreachable"}

	result := NewPipeline(driver).Import(context.Background(), false, nil)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Failed to import from Stub")
	assert.Contains(t, result.Message, "sheet unreachable")
	assert.Empty(t, result.ValidResumes)
	assert.Empty(t, result.ValidationErrors)
	assert.Zero(t, result.TotalRecords)
}

func TestImport_SkipValidationDropsBadRowsSilently(t *testing.T) {
	raw := NewTable(
		[]string{"name", "email", "score"},
		[][]any{
			{"A", "a@x.com", 90.0},
			{"B", "bad-email", 50.0},
			{"", nil, 10.0},
		},
	)

	result := NewPipeline(testDriver(raw)).Import(context.Background(), true, nil)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalRecords)
	// Bad email dropped with no error; the incomplete row survives because
	// the completeness filter only applies during validated import.
	require.Len(t, result.ValidResumes, 2)
	assert.Empty(t, result.ValidationErrors)
}

func TestImport_ValidatedCountsAndMessage(t *testing.T) {
	raw := NewTable(
		[]string{"name", "email"},
		[][]any{
			{"A", "a@x.com"},
			{"B", "b@x.com"},
		},
	)

	result := NewPipeline(testDriver(raw)).Import(context.Background(), false, nil)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalRecords)
	assert.Len(t, result.ValidResumes, 2)
	assert.Contains(t, result.Message, "Successfully processed 2 records from Stub")
}

func TestImport_NonFetchErrorType(t *testing.T) {
	driver := testDriver(nil)
	driver.fetchErr = errors.New("boom")

	result := NewPipeline(driver).Import(context.Background(), false, nil)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "boom")
}
