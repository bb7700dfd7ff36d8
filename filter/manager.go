package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// NamedPrefix marks a --where value as the name of a registered filter.
const NamedPrefix = "@"

// Manager holds named filters, such as those declared in the config file.
type Manager struct {
	compiler *Compiler
	filters  map[string]*Filter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler *Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: defaultCompiler,
		filters:  make(map[string]*Filter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilters compiles and registers every filter, or none if any fails.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]*Filter, len(filters))

	// Compile all filters first
	for name, expression := range filters {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (*Filter, bool) {
	m.mu.RLock()
	f, exists := m.filters[name]
	m.mu.RUnlock()
	return f, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve turns a --where value into a filter: "@name" refers to a
// registered filter, anything else is compiled as an expression.
func (m *Manager) Resolve(where string) (*Filter, error) {
	where = strings.TrimSpace(where)
	if name, ok := strings.CutPrefix(where, NamedPrefix); ok {
		f, exists := m.GetFilter(name)
		if !exists {
			// Config keys are case-insensitive and stored lowercased.
			f, exists = m.GetFilter(strings.ToLower(name))
		}
		if !exists {
			return nil, fmt.Errorf("filter '%s' not found (known: %s)", name, strings.Join(m.ListFilters(), ", "))
		}
		return f, nil
	}
	return m.compiler.Compile(where)
}
