package generator

import "sync"

// Registry is the set of structural keys already handed out. It only
// grows. A Registry is safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{keys: make(map[string]struct{})}
}

// Claim inserts key and reports whether it was absent. The check and the
// insert happen under one lock, so two callers can never both claim the
// same key.
func (r *Registry) Claim(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.keys[key]; dup {
		return false
	}
	r.keys[key] = struct{}{}
	return true
}

func (r *Registry) Contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.keys[key]
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}
