package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Counter is a call count for one calendar period.
type Counter struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// State is the persisted usage file.
type State struct {
	Daily     Counter   `json:"daily"`
	Monthly   Counter   `json:"monthly"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadState reads usage state from a JSON file. A missing file yields a zero state.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("read usage state: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse usage state %s: %w", filePath, err)
	}
	return &s, nil
}

// SaveState writes usage state to a JSON file.
func SaveState(filePath string, s *State) error {
	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
