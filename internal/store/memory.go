package store

import (
	"context"
	"sync"

	"github.com/pavelanni/trivium/internal/model"
)

// MemoryGames is the in-memory GameStore. Games live for the process.
type MemoryGames struct {
	mu    sync.RWMutex
	games map[string]model.Game
}

// NewMemoryGames creates an empty in-memory game store.
func NewMemoryGames() *MemoryGames {
	return &MemoryGames{games: make(map[string]model.Game)}
}

func (m *MemoryGames) SaveGame(_ context.Context, g model.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *MemoryGames) GetGame(_ context.Context, id string) (model.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return model.Game{}, ErrNotFound
	}
	return g, nil
}

// MemoryFingerprints is the in-memory FingerprintStore: one independent set
// per owner key.
type MemoryFingerprints struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

// NewMemoryFingerprints creates an empty in-memory fingerprint store.
func NewMemoryFingerprints() *MemoryFingerprints {
	return &MemoryFingerprints{sets: make(map[string]map[string]struct{})}
}

func (m *MemoryFingerprints) Add(_ context.Context, ownerKey, fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[ownerKey]
	if !ok {
		set = make(map[string]struct{})
		m.sets[ownerKey] = set
	}
	set[fingerprint] = struct{}{}
	return nil
}

func (m *MemoryFingerprints) Has(_ context.Context, ownerKey, fingerprint string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.sets[ownerKey]
	if !ok {
		return false, nil
	}
	_, ok = set[fingerprint]
	return ok, nil
}

func (m *MemoryFingerprints) List(_ context.Context, ownerKey string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := m.sets[ownerKey]
	out := make([]string, 0, len(set))
	for fp := range set {
		out = append(out, fp)
	}
	return out, nil
}

func (m *MemoryFingerprints) Clear(_ context.Context, ownerKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, ownerKey)
	return nil
}
