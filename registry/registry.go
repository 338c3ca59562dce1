// Package registry holds the two handling maps consulted by the dispatch
// engine: definitions recognized as classified errors, and raw error types
// that are promoted to a wrapping definition before handling.
//
// Both maps are keyed by the runtime type tag returned by variant.TypeName.
// Lookups are exact: registering a derived definition never makes instances
// of its parent recognized, and the other way around.
package registry

import (
	"sort"
	"sync"

	"codeberg.org/algorave/errhandler/variant"
)

type Registry struct {
	variants map[string]*variant.Definition
	wraps    map[string]*variant.Definition
	mu       sync.RWMutex
}

// WrapRule is one entry of the wrap map.
type WrapRule struct {
	Source  string
	Wrapper *variant.Definition
}

func New() *Registry {
	return &Registry{
		variants: make(map[string]*variant.Definition),
		wraps:    make(map[string]*variant.Definition),
	}
}

// registers def as a known variant, replacing any definition with the same name
func (r *Registry) Register(def *variant.Definition) {
	if def == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants[def.Name()] = def
}

// removes def's name from the known variants; absent names are ignored
func (r *Registry) Unregister(def *variant.Definition) {
	if def == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.variants, def.Name())
}

// WrapAs makes every error with the same runtime type as raw dispatch as an
// instance of wrapper. raw only identifies the type, so a typed nil pointer
// works: WrapAs((*pgconn.PgError)(nil), DatabaseError).
func (r *Registry) WrapAs(raw error, wrapper *variant.Definition) {
	name := variant.TypeName(raw)
	if name == "" || wrapper == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.wraps[name] = wrapper
}

// removes the wrap rule for raw's type; absent rules are ignored
func (r *Registry) RemoveWrap(raw error) {
	name := variant.TypeName(raw)
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wraps, name)
}

// returns the registered definition for an exact type tag
func (r *Registry) Variant(name string) (*variant.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.variants[name]
	return def, ok
}

// returns the wrapper registered for an exact raw type tag
func (r *Registry) Wrapper(name string) (*variant.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.wraps[name]
	return def, ok
}

// returns the registered definitions sorted by name
func (r *Registry) Variants() []*variant.Definition {
	r.mu.RLock()
	out := make([]*variant.Definition, 0, len(r.variants))
	for _, def := range r.variants {
		out = append(out, def)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})

	return out
}

// returns the wrap rules sorted by source type
func (r *Registry) Wraps() []WrapRule {
	r.mu.RLock()
	out := make([]WrapRule, 0, len(r.wraps))
	for source, wrapper := range r.wraps {
		out = append(out, WrapRule{Source: source, Wrapper: wrapper})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Source < out[j].Source
	})

	return out
}
