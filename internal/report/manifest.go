package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Artifact is one file produced by a report run.
type Artifact struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Kind string `json:"kind"` // "chart" or "manifest"
}

// Manifest records a single report run and the artifacts it produced.
type Manifest struct {
	RunID       string     `json:"run_id"`
	Source      string     `json:"source"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt time.Time  `json:"completed_at"`
	Artifacts   []Artifact `json:"artifacts"`
}

// NewManifest starts a manifest for a run against the given source file.
func NewManifest(source string) *Manifest {
	return &Manifest{
		RunID:     uuid.New().String(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
}

// AddChart records a produced chart file.
func (m *Manifest) AddChart(path string) {
	m.Artifacts = append(m.Artifacts, Artifact{
		Name: filepath.Base(path),
		Path: path,
		Kind: "chart",
	})
}

// Write stamps the completion time and writes the manifest into dir as
// manifest.json.
func (m *Manifest) Write(dir string) (string, error) {
	m.CompletedAt = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
