package storage

import (
	"context"
	"sync"

	"brewd/internal/machine"
)

// Memory keeps the last-saved snapshot in process memory. Useful for
// tests and ephemeral runs; nothing survives a restart.
type Memory struct {
	mu    sync.Mutex
	state *machine.Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*machine.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	// Snapshot holds only value fields, so a struct copy is a deep copy.
	// Callers must never alias the stored state.
	cp := *m.state
	return &cp, nil
}

func (m *Memory) Save(_ context.Context, s *machine.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.state = &cp
	return nil
}

func (m *Memory) Close() error { return nil }
