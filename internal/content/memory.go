package content

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"sync"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// MemoryRepository is an in-memory ContentRepository for tests and previews.
type MemoryRepository struct {
	mu    sync.RWMutex
	files map[string]map[string][]byte
}

var _ interfaces.ContentRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{files: make(map[string]map[string][]byte)}
}

// Put stores a copy of data under contentType/name, replacing any previous file.
func (m *MemoryRepository) Put(contentType, name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.files[contentType]
	if !ok {
		bucket = make(map[string][]byte)
		m.files[contentType] = bucket
	}
	bucket[name] = slices.Clone(data)
}

// PutString is Put for string content.
func (m *MemoryRepository) PutString(contentType, name, data string) {
	m.Put(contentType, name, []byte(data))
}

// List returns the stored names of contentType in lexical order.
func (m *MemoryRepository) List(ctx context.Context, contentType string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.files[contentType]))
	for name := range m.files[contentType] {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Read returns a copy of the stored bytes.
func (m *MemoryRepository) Read(ctx context.Context, contentType, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[contentType][name]
	if !ok {
		return nil, fmt.Errorf("content: read %s/%s: %w", contentType, name, fs.ErrNotExist)
	}
	return slices.Clone(data), nil
}

// Exists reports whether contentType/name is stored.
func (m *MemoryRepository) Exists(ctx context.Context, contentType, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.files[contentType][name]
	return ok, nil
}
