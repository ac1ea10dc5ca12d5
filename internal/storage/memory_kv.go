package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryKV is an in-process KV used by tests and ephemeral sessions. StoreErr,
// when set, makes the next Store call fail without touching state, which is
// how the engine's no-partial-commit behavior is exercised.
type MemoryKV struct {
	mu         sync.Mutex
	values     map[string]json.RawMessage
	storeCalls int
	StoreErr   error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]json.RawMessage)}
}

func (m *MemoryKV) Load(_ context.Context, keys []string) (map[string]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			dup := make(json.RawMessage, len(v))
			copy(dup, v)
			out[k] = dup
		}
	}
	return out, nil
}

func (m *MemoryKV) Store(_ context.Context, values map[string]json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeCalls++
	if m.StoreErr != nil {
		err := m.StoreErr
		m.StoreErr = nil
		return err
	}
	for k, v := range values {
		dup := make(json.RawMessage, len(v))
		copy(dup, v)
		m.values[k] = dup
	}
	return nil
}

// Len reports how many keys are stored, for test assertions.
func (m *MemoryKV) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// StoreCalls reports how many Store calls were made, failed ones included.
func (m *MemoryKV) StoreCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeCalls
}
