package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// StorageNamespace is the fixed key dashboards persist under.
const StorageNamespace = "horyco.dashboard.config"

// MemoryStorage keeps the serialized config in memory. Useful for tests and
// as the safe default when no durable storage is configured.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: map[string][]byte{}}
}

// Load returns the stored config, reporting ok=false when nothing usable is
// stored.
func (s *MemoryStorage) Load(_ context.Context) (DashboardConfig, bool, error) {
	s.mu.RLock()
	raw, ok := s.data[StorageNamespace]
	s.mu.RUnlock()
	if !ok {
		return NewDashboardConfig(), false, nil
	}
	return decodeConfig(raw)
}

// Save serializes the config under the fixed namespace.
func (s *MemoryStorage) Save(_ context.Context, config DashboardConfig) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("dashboard: encode config: %w", err)
	}
	s.mu.Lock()
	s.data[StorageNamespace] = raw
	s.mu.Unlock()
	return nil
}

// FileStorage persists the config as a JSON snapshot on disk.
type FileStorage struct {
	path string
}

// NewFileStorage stores snapshots at the given path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the snapshot. A missing or corrupt file degrades to an empty
// default (ok=false) rather than an error.
func (s *FileStorage) Load(_ context.Context) (DashboardConfig, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDashboardConfig(), false, nil
		}
		return NewDashboardConfig(), false, fmt.Errorf("dashboard: read config %s: %w", s.path, err)
	}
	return decodeConfig(raw)
}

// Save writes the full snapshot atomically (temp file + rename).
func (s *FileStorage) Save(_ context.Context, config DashboardConfig) error {
	raw, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("dashboard: encode config: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dashboard: create config dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".dashboard-*.json")
	if err != nil {
		return fmt.Errorf("dashboard: create temp config: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("dashboard: write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("dashboard: close config: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("dashboard: replace config %s: %w", s.path, err)
	}
	return nil
}

// decodeConfig deserializes a snapshot, treating corrupt or schema-mismatched
// data as absent so hydration falls back to an empty default.
func decodeConfig(raw []byte) (DashboardConfig, bool, error) {
	var config DashboardConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return NewDashboardConfig(), false, nil
	}
	if config.Widgets == nil {
		config.Widgets = map[string]WidgetConfig{}
	}
	for id, widget := range config.Widgets {
		if widget.ID != id || !widget.Visualization.Valid() {
			return NewDashboardConfig(), false, nil
		}
	}
	if config.Layout == nil {
		config.Layout = []WidgetLayoutItem{}
	}
	return config, true, nil
}
