package agent

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// modelVersion is bumped whenever the file layout changes.
const modelVersion = 1

// Model is a saved network with the training result that produced it.
type Model struct {
	Version    int      `msgpack:"version"`
	Generation int      `msgpack:"generation"`
	Fitness    float64  `msgpack:"fitness"`
	Score      int      `msgpack:"score"`
	Network    *Network `msgpack:"network"`
}

// Encode serialises m with msgpack.
func (m *Model) Encode() ([]byte, error) {
	if err := m.Network.Validate(); err != nil {
		return nil, err
	}
	m.Version = modelVersion
	data, err := msgpack.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("agent: cannot encode model: %w", err)
	}
	return data, nil
}

// DecodeModel parses a model and checks the network shape.
func DecodeModel(data []byte) (*Model, error) {
	var m Model
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("agent: cannot decode model: %w", err)
	}
	if m.Version != modelVersion {
		return nil, fmt.Errorf("agent: unsupported model version %d", m.Version)
	}
	if err := m.Network.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveModel writes m to path.
func SaveModel(path string, m *Model) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("agent: cannot write %s: %w", path, err)
	}
	return nil
}

// LoadModel reads a model from path.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("agent: cannot read %s: %w", path, err)
	}
	return DecodeModel(data)
}
