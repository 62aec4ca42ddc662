package store

import (
	"sync"

	"github.com/google/uuid"

	"ordo-core/internal/domain/entity"
)

// MemoryMediaStore keeps generated media bytes addressable by an opaque
// UUID handle for the lifetime of the process.
type MemoryMediaStore struct {
	mu    sync.RWMutex
	items map[string]*entity.GeneratedMedia
}

func NewMemoryMediaStore() *MemoryMediaStore {
	return &MemoryMediaStore{items: make(map[string]*entity.GeneratedMedia)}
}

func (s *MemoryMediaStore) Put(media *entity.GeneratedMedia) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.items[id] = media
	s.mu.Unlock()
	return id
}

func (s *MemoryMediaStore) Get(id string) (*entity.GeneratedMedia, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	media, ok := s.items[id]
	return media, ok
}
