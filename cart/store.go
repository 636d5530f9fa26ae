package cart

import "sync"

// Store holds one cart per caja session. Carts are created on first use
// and dropped explicitly; nothing here ever touches the database.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the session's cart, creating it when missing.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.RLock()
	ct, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return ct
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ct, ok := s.carts[sessionID]; ok {
		return ct
	}
	ct = New()
	s.carts[sessionID] = ct
	return ct
}

// Drop discards a session's cart entirely.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
