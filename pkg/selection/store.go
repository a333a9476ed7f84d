package selection

import (
	"context"
	"sync"

	"github.com/matzehuels/imagewall/pkg/model"
)

// Store is an in-memory selection owner standing in for a host selection
// manager. It is safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	sel Selection
}

// NewStore creates a store with an initial selection.
func NewStore(initial ...model.Identity) *Store {
	return &Store{sel: New(initial...)}
}

// Toggle commits intent and returns the resulting snapshot.
func (s *Store) Toggle(ctx context.Context, intent ToggleIntent) (Selection, error) {
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = s.sel.Toggled(intent.Identity)
	return s.sel, nil
}

// Clear empties the selection and returns the empty snapshot.
func (s *Store) Clear(ctx context.Context) (Selection, error) {
	if err := ctx.Err(); err != nil {
		return Selection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = Selection{}
	return s.sel, nil
}

// Snapshot returns the current selection.
func (s *Store) Snapshot() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel
}
