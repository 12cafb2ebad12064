package importer

import "context"

// Params carries source-specific fetch parameters, such as the path of a
// local file or an override spreadsheet ID.
type Params map[string]string

// Get returns the named parameter or the fallback when absent or blank.
func (p Params) Get(key, fallback string) string {
	if p == nil {
		return fallback
	}
	if v, ok := p[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Driver is the per-source adapter the pipeline runs against. A driver knows
// how to reach its backing store, how its native columns map onto canonical
// resume fields, and which value fixups its data needs.
//
// Implementations must keep Transform pure and safe to apply after the
// pipeline has already renamed columns to canonical names.
type Driver interface {
	// SourceName identifies the driver; lower-cased it becomes the
	// provenance tag stored on every imported record.
	SourceName() string

	// FieldMapping maps native column names to canonical resume field names.
	// Static and side-effect free.
	FieldMapping() map[string]string

	// FetchData retrieves the source's full raw snapshot. It returns a
	// *FetchError when the backing resource is unreachable, absent, or
	// malformed.
	FetchData(ctx context.Context, params Params) (*Table, error)

	// Transform applies source-specific value fixups to one canonical row.
	// At minimum every driver stringifies its native identifier and maps
	// blank strings to nil.
	Transform(row Row) Row
}
