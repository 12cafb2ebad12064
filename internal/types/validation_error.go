package types

import "fmt"

// ValidationError describes a single row that failed canonical-record
// construction during import. It is reported back to the caller and never
// persisted.
type ValidationError struct {
	RowIndex int    `json:"row_index"`
	Field    string `json:"field"`
	Message  string `json:"error"`
	RawValue string `json:"raw_value"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("row %d: %s - %s", e.RowIndex, e.Field, e.Message)
}
