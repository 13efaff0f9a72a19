// Package source defines the Source plugin interface and a registry for
// source plugins that turn a transcript format into tool call events.
package source

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/scbrown/deliverable/internal/model"
)

// ErrUnknownSource is returned by Lookup when no plugin has the given name.
var ErrUnknownSource = errors.New("unknown source")

// Source reads one transcript format into an ordered list of tool call
// events. Event indexes are zero-based positions in the returned slice
// unless the format carries its own.
type Source interface {
	// Name returns the unique identifier for this source (e.g., "claude-code").
	Name() string

	// Description returns a short human-readable description.
	Description() string

	// Events parses a whole transcript.
	Events(r io.Reader) ([]model.ToolCallEvent, error)
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Source)
)

// Register adds a source plugin to the registry. It panics if a source
// with the same name is already registered.
func Register(s Source) {
	mu.Lock()
	defer mu.Unlock()
	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("source: duplicate registration for %q", name))
	}
	registry[name] = s
}

// Get returns the source plugin with the given name, or nil if not found.
func Get(name string) Source {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Lookup is Get returning ErrUnknownSource, listing the available names,
// when name is not registered.
func Lookup(name string) (Source, error) {
	if s := Get(name); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSource, name, strings.Join(Names(), ", "))
}

// Names returns the sorted names of all registered source plugins.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
