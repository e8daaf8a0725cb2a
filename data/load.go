package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrNoModes  = errors.New("no modes to load")
	ErrNoRounds = errors.New("mode has no rounds")
)

func LoadModes(raw []byte) ([]*Mode, error) {
	var modes []*Mode
	if err := json.Unmarshal(raw, &modes); err != nil {
		return nil, fmt.Errorf("parse modes: %w", err)
	}

	if len(modes) == 0 {
		return nil, ErrNoModes
	}

	seen := make(map[string]struct{}, len(modes))
	for i, mode := range modes {
		if mode == nil || mode.ID == "" {
			return nil, fmt.Errorf("mode %v has no id", i)
		}

		if _, dupe := seen[mode.ID]; dupe {
			return nil, fmt.Errorf("duplicate mode id %q", mode.ID)
		}
		seen[mode.ID] = struct{}{}

		if len(mode.Rounds) == 0 {
			return nil, fmt.Errorf("mode %q: %w", mode.ID, ErrNoRounds)
		}

		for j, round := range mode.Rounds {
			if round == nil {
				return nil, fmt.Errorf("mode %q: round %v is empty", mode.ID, j+1)
			}
		}
	}

	return modes, nil
}

// LoadModesFile reads modes from path, or the embedded modes when path is
// empty.
func LoadModesFile(path string) ([]*Mode, error) {
	if path == "" {
		return LoadModes(ModesJSON)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read modes file %v: %w", path, err)
	}

	return LoadModes(raw)
}

func FindMode(modes []*Mode, id string) (*Mode, bool) {
	for _, mode := range modes {
		if mode.ID == id {
			return mode, true
		}
	}

	return nil, false
}
