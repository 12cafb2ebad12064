package importer

import (
	"fmt"
	"strings"
)

// FetchError reports that a driver could not retrieve its source data:
// unreachable backend, missing file, malformed response, absent credentials.
// It is fatal for the import run; the pipeline stops before transforming.
type FetchError struct {
	Source  string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to fetch data from %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to fetch data from %s: %s", e.Source, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned by the registry when no driver is registered
// under the requested name. The message lists what is available.
type NotFoundError struct {
	Source    string
	Available []string
}

func (e *NotFoundError) Error() string {
	available := "none"
	if len(e.Available) > 0 {
		available = strings.Join(e.Available, ", ")
	}
	return fmt.Sprintf("unknown source %q. Available sources: %s", e.Source, available)
}
