package store

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/IAMC-DH/my-site-template/internal/config"
	"github.com/IAMC-DH/my-site-template/internal/pubsub"
)

// Export records one SaveToFile call made against a Memory store.
type Export struct {
	Section string
	Field   string
	Value   any
}

// Memory is an in-memory Store for tests. Exports are recorded synchronously
// instead of being written to disk.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]config.Object
	exports  []Export
	bus      *pubsub.Bus
	editMode atomic.Bool
}

func NewMemory(bus *pubsub.Bus) *Memory {
	return &Memory{
		data: make(map[string]config.Object),
		bus:  bus,
	}
}

func (m *Memory) Close() {}

func (m *Memory) GetData(ctx context.Context, key string) (config.Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return config.Clone(v), nil
}

func (m *Memory) SaveData(ctx context.Context, key string, value config.Object) error {
	m.mu.Lock()
	m.data[key] = config.Clone(value)
	m.mu.Unlock()

	m.bus.Publish(pubsub.Update{Key: key, Value: config.Clone(value)})
	return nil
}

func (m *Memory) SaveToFile(section, field string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports = append(m.exports, Export{Section: section, Field: field, Value: value})
}

// Exports returns the SaveToFile calls recorded so far.
func (m *Memory) Exports() []Export {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Export, len(m.exports))
	copy(out, m.exports)
	return out
}

func (m *Memory) EditMode() bool {
	return m.editMode.Load()
}

func (m *Memory) SetEditMode(enabled bool) {
	m.editMode.Store(enabled)
}
