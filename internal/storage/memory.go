package storage

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps everything in process memory. SSH sessions share one
// when no database is available.
type MemoryStore struct {
	mu   sync.Mutex
	high int
	runs []RunEntry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadHighScore implements runner.HighScoreStore.
func (m *MemoryStore) LoadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.high, nil
}

// SaveHighScore implements runner.HighScoreStore.
func (m *MemoryStore) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.high = max(m.high, score)
	return nil
}

// RecordRun implements runner.RunRecorder.
func (m *MemoryStore) RecordRun(score, ticks int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, RunEntry{
		ID:        int64(len(m.runs) + 1),
		Score:     score,
		Ticks:     ticks,
		CreatedAt: time.Now(),
	})
	return nil
}

// TopRuns returns the best N runs, highest score first.
func (m *MemoryStore) TopRuns(limit int) ([]RunEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := slices.Clone(m.runs)
	slices.SortStableFunc(out, func(a, b RunEntry) int { return cmp.Compare(b.Score, a.Score) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
