package cart

import (
	"context"
	"sync"
)

// LineItem is one cart entry. Name and Price are copied from the catalog
// at add-time and never re-derived.
type LineItem struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Qty       int    `json:"qty"`
}

// Store is the cart repository. Implementations hold the ordered line
// items per user; a user without a cart loads as an empty slice.
type Store interface {
	Load(ctx context.Context, userID string) ([]LineItem, error)
	Save(ctx context.Context, userID string, items []LineItem) error
	Clear(ctx context.Context, userID string) error
}

// MemoryStore keeps carts for the process lifetime. Access is serialized
// with an RWMutex so concurrent requests cannot corrupt the map; the
// read-modify-write cycle across two requests for the same user remains
// last-write-wins.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]LineItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]LineItem)}
}

func (s *MemoryStore) Load(_ context.Context, userID string) ([]LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]LineItem(nil), s.carts[userID]...), nil
}

func (s *MemoryStore) Save(_ context.Context, userID string, items []LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = append([]LineItem(nil), items...)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}
