package store

import "sync"

// Memory is an in-process KV for tests. Values are encoded the same way as
// in SQLite so type conversions behave identically.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool

	// PutError, if set, is returned by Put.
	PutError error

	// Puts counts successful Put calls.
	Puts int
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func memKey(ns, key string) string { return ns + "\x00" + key }

// Get implements KV.
func (m *Memory) Get(ns, key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}
	data, ok := m.data[memKey(ns, key)]
	if !ok {
		return false, nil
	}
	if err := decode(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Put implements KV.
func (m *Memory) Put(ns, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.PutError != nil {
		return m.PutError
	}
	data, err := encode(v)
	if err != nil {
		return err
	}
	m.data[memKey(ns, key)] = data
	m.Puts++
	return nil
}

// Delete implements KV.
func (m *Memory) Delete(ns, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.data, memKey(ns, key))
	return nil
}

// Close implements KV.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
