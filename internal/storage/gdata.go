package storage

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the gdata application directory.
	AppName = "trex_runner"

	scoresObject   = "scores"
	highScoreProp  = "highScore"
	scoresFileNote = "trex-runner high score"
)

// scoreRecord is the YAML payload of the high score property.
type scoreRecord struct {
	HighScore int    `yaml:"high_score"`
	Note      string `yaml:"note,omitempty"`
}

// GDataStore keeps the high score in the platform's per-user data directory.
// It is safe for concurrent use by several games.
type GDataStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
}

// OpenGData opens the gdata store for appName.
func OpenGData(appName string) (*GDataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata %s: %w", appName, err)
	}
	return &GDataStore{manager: m}, nil
}

// LoadHighScore returns the stored high score, or 0 when none was stored.
func (s *GDataStore) LoadHighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *GDataStore) load() (int, error) {
	if !s.manager.ObjectPropExists(scoresObject, highScoreProp) {
		return 0, nil
	}

	data, err := s.manager.LoadObjectProp(scoresObject, highScoreProp)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load high score: %w", err)
	}

	var rec scoreRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("storage: cannot parse high score: %w", err)
	}
	if rec.HighScore < 0 {
		return 0, fmt.Errorf("storage: invalid high score %d", rec.HighScore)
	}
	return rec.HighScore, nil
}

// SaveHighScore stores the high score unless a higher one is already stored.
// An unreadable stored value is replaced.
func (s *GDataStore) SaveHighScore(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: negative high score %d", score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, err := s.load(); err == nil && score <= stored {
		return nil
	}
	data, err := yaml.Marshal(scoreRecord{HighScore: score, Note: scoresFileNote})
	if err != nil {
		return fmt.Errorf("storage: cannot encode high score: %w", err)
	}
	if err := s.manager.SaveObjectProp(scoresObject, highScoreProp, data); err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}
