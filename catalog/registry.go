package catalog

import (
	"sync"
)

// Registry holds current catalog and allows replacing it atomically while
// readers are using it.
type Registry struct {
	mu       sync.RWMutex
	current  *Catalog
	onChange []func(*Catalog)
}

// NewRegistry creates registry serving given catalog, nil means default
// catalog.
func NewRegistry(c *Catalog) *Registry {
	if c == nil {
		c = Default()
	}
	return &Registry{current: c}
}

// Catalog returns catalog current at the time of the call. Callers keep
// using returned value even if registry is swapped later.
func (r *Registry) Catalog() *Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Swap replaces current catalog and returns previous one.
func (r *Registry) Swap(c *Catalog) *Catalog {
	if c == nil {
		return r.Catalog()
	}
	r.mu.Lock()
	old := r.current
	r.current = c
	callbacks := append([]func(*Catalog){}, r.onChange...)
	r.mu.Unlock()

	for _, fn := range callbacks {
		fn(c)
	}
	return old
}

// OnChange registers callback invoked after every swap.
func (r *Registry) OnChange(fn func(*Catalog)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}
