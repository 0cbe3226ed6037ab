package dashboard

import (
	"sync"

	"PulseBoard/internal/model"
)

// Store keeps the bundle of the most recent refresh cycle. Each publish
// replaces the previous bundle entirely.
type Store struct {
	mu     sync.RWMutex
	latest *model.RenderBundle
}

func NewStore() *Store { return &Store{} }

// Publish implements scheduler.Publisher.
func (s *Store) Publish(bundle *model.RenderBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = bundle
}

// Latest returns the current bundle, or nil before the first cycle completes.
func (s *Store) Latest() *model.RenderBundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
