package session

import (
	"context"
	"sync"
)

// Record is a session value a Registry can own. Clone must return a deep
// copy: registries hand out clones so callers can never alias stored state.
type Record[T any] interface {
	SessionID() string
	Clone() T
}

// Registry maps session identifiers to the records of one technique.
type Registry[T Record[T]] interface {
	// Insert stores a new record. It fails with ErrDuplicateID when the
	// record's id is already present.
	Insert(ctx context.Context, rec T) error
	// Get returns a copy of the record, or an ErrNotFound error.
	Get(ctx context.Context, id string) (T, error)
	// Update runs fn against a copy of the record and commits the copy
	// only when fn returns nil. Updates to one registry are serialized.
	Update(ctx context.Context, id string, fn func(rec T) error) (T, error)
	// List returns every record in creation order.
	List(ctx context.Context) ([]T, error)
}

// MemoryRegistry is the map-backed Registry. It is safe for concurrent use.
type MemoryRegistry[T Record[T]] struct {
	name string

	mu      sync.RWMutex
	records map[string]T
	order   []string
}

// NewMemoryRegistry creates an empty registry. name is used in error
// messages ("why analysis", "scamper session", ...).
func NewMemoryRegistry[T Record[T]](name string) *MemoryRegistry[T] {
	return &MemoryRegistry[T]{
		name:    name,
		records: make(map[string]T),
	}
}

// Insert implements Registry.
func (r *MemoryRegistry[T]) Insert(_ context.Context, rec T) error {
	id := rec.SessionID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; ok {
		return ErrDuplicateID
	}
	r.records[id] = rec.Clone()
	r.order = append(r.order, id)
	return nil
}

// Get implements Registry.
func (r *MemoryRegistry[T]) Get(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		var zero T
		return zero, NotFoundf("%s %q does not exist", r.name, id)
	}
	return rec.Clone(), nil
}

// Update implements Registry.
func (r *MemoryRegistry[T]) Update(_ context.Context, id string, fn func(rec T) error) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return zero, NotFoundf("%s %q does not exist", r.name, id)
	}

	draft := rec.Clone()
	if err := fn(draft); err != nil {
		return zero, err
	}
	r.records[id] = draft
	return draft.Clone(), nil
}

// List implements Registry.
func (r *MemoryRegistry[T]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id].Clone())
	}
	return out, nil
}
