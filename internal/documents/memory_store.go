package documents

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// MemoryStore satisfies the document store contract without touching disk.
// Names are listed in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	order []string
	docs  map[string][]byte
}

var _ interfaces.DocumentStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (s *MemoryStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order), nil
}

func (s *MemoryStore) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.docs[name]
	if !ok {
		return nil, notFoundError(name, fmt.Errorf("memory store has no %q", name))
	}
	return slices.Clone(content), nil
}

func (s *MemoryStore) Write(_ context.Context, name string, content []byte) error {
	if !isPlainName(name) {
		return validationError(ErrInvalidName, MessageInvalidName, codeNameInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(name, slices.Clone(content))
	return nil
}

func (s *MemoryStore) Create(_ context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(name, []byte{})
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return notFoundError(name, fmt.Errorf("memory store has no %q", name))
	}
	delete(s.docs, name)
	s.order = slices.DeleteFunc(s.order, func(existing string) bool { return existing == name })
	return nil
}

func (s *MemoryStore) put(name string, content []byte) {
	if _, ok := s.docs[name]; !ok {
		s.order = append(s.order, name)
	}
	s.docs[name] = content
}
