// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/melexis/jira-juggler/pkg/types"
)

// Snapshot is a fetched issue set written to disk, so a conversion can be
// rerun offline against the same data.
type Snapshot struct {
	Query     string        `yaml:"query"`
	Endpoint  string        `yaml:"endpoint"`
	FetchedAt time.Time     `yaml:"fetched_at"`
	Issues    []types.Issue `yaml:"issues"`
}

// WriteSnapshot saves the snapshot as YAML at path.
func WriteSnapshot(path string, snap *Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return &snap, nil
}
