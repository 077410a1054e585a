package target

import (
	"fmt"
	"sort"
	"sync"

	"github.com/syssam/teogen/compiler/gen"
)

// Factory creates a target with its default settings.
type Factory func() gen.Target

// Registry holds the available targets by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry with every built-in target.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	// Clients
	r.Register("ts", func() gen.Target { return NewTypeScript() })
	r.Register("dart", func() gen.Target { return NewDart() })
	r.Register("kotlin", func() gen.Target { return NewKotlin() })
	r.Register("swift", func() gen.Target { return NewSwift() })
	r.Register("python", func() gen.Target { return NewPython() })
	r.Register("go", func() gen.Target { return NewGo("") })
	r.Register("graphql", func() gen.Target { return NewGraphQL() })

	// Entities
	r.Register("node", func() gen.Target { return NewNode() })
	r.Register("rust", func() gen.Target { return NewRust() })

	// Admin dashboard with the embedded boilerplate; see NewAdmin for a provider.
	r.Register("admin", func() gen.Target { return NewAdmin(nil) })
	return r
}

// Register adds a target factory under name, replacing any previous one.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get returns a new target by name.
func (r *Registry) Get(name string) (gen.Target, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, gen.NewConfigError("Target", name, fmt.Sprintf("unknown target; available: %v", r.List()))
	}
	return f(), nil
}

// List returns the registered target names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// New returns a built-in target by name.
func New(name string) (gen.Target, error) { return defaultRegistry.Get(name) }

// MustNew is like New but panics on unknown names.
func MustNew(name string) gen.Target {
	t, err := New(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Names returns the names of the built-in targets.
func Names() []string { return defaultRegistry.List() }
