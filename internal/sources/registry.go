package sources

import "github.com/lucemia/agent-hr/internal/importer"

// RegisterAll registers every known driver on the given registry.
func RegisterAll(registry *importer.Registry) {
	registry.Register("csv", NewCSV)
	registry.Register("cake", NewCake)
	registry.Register("lrs", NewLRS)
	registry.Register("yourator", NewYourator)
}
