package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/testkitchen/kitchen-linode/internal/provisioning"
)

// loadState reads the state file at path. A missing file is an empty record,
// not an error: create starts from scratch and destroy has nothing to do.
func loadState(path string) (*provisioning.State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &provisioning.State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file %s: %w", path, err)
	}

	var st provisioning.State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	return &st, nil
}

// saveState writes the state record to path, creating parent directories as
// needed. The file is user-only: it references the SSH key for the instance.
func saveState(path string, st *provisioning.State) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating state directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing state file %s: %w", path, err)
	}
	return nil
}
