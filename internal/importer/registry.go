package importer

import (
	"sort"
	"strings"
)

// Constructor builds a fresh driver instance.
type Constructor func() Driver

// Registry maps source names to driver constructors. The CLI builds one at
// startup and registers every known source; lookups are case-insensitive.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry returns an empty driver registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a driver constructor under the given source name, replacing
// any previous registration for that name.
func (r *Registry) Register(name string, ctor Constructor) {
	r.constructors[strings.ToLower(name)] = ctor
}

// Create instantiates the driver registered under name. Unknown names return
// a *NotFoundError listing the registered sources.
func (r *Registry) Create(name string) (Driver, error) {
	ctor, ok := r.constructors[strings.ToLower(name)]
	if !ok {
		return nil, &NotFoundError{Source: name, Available: r.Sources()}
	}
	return ctor(), nil
}

// Sources lists registered source names in sorted order.
func (r *Registry) Sources() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
