// Package registry implements the process registry referenced at spec.md's
// boundary: the map from (user, process id) to a worker.Handle, keyed so
// that one caller's processes are invisible to every other caller. Ported
// from paasd's store.rs (ProcessStore), which holds the identical
// (UserId, Arc<Process>) pairing behind a single RwLock<HashMap>.
package registry

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/oppaas/procd/internal/worker"
)

// ErrNotFound is returned both when no process exists for an id and when a
// process exists but belongs to a different caller - deliberately
// indistinguishable, per spec.md §7, to avoid leaking existence across
// tenants.
var ErrNotFound = errors.New("registry: process not found")

type entry struct {
	owner  string
	handle *worker.Handle
}

// Registry is the multi-tenant process store. The zero value is not usable;
// construct with New.
type Registry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[uuid.UUID]entry)}
}

// newProcessID mints external process ids; a package-level seam so tests
// can force the collision Insert is supposed to treat as fatal.
var newProcessID = uuid.New

// Insert registers handle under owner with a freshly minted id. A collision
// with an existing id means the id source is no longer producing unique
// values, a fatal invariant violation (spec.md §7), not a runtime error.
func (r *Registry) Insert(owner string, handle *worker.Handle) uuid.UUID {
	id := newProcessID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		panic("registry: duplicate process id minted: " + id.String())
	}
	r.entries[id] = entry{owner: owner, handle: handle}
	return id
}

// Get returns the handle for id if owner owns it. Both "no such id" and
// "id belongs to someone else" report ErrNotFound.
func (r *Registry) Get(owner string, id uuid.UUID) (*worker.Handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || e.owner != owner {
		return nil, ErrNotFound
	}
	return e.handle, nil
}
