package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"duty-validator/internal/domain"
)

// FileRepository implements domain.SettingsRepository using a JSON file.
// This is a secondary adapter.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a new file-based settings repository.
func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	return &FileRepository{path: path}, nil
}

// persistedData represents the JSON structure on disk.
type persistedData struct {
	LegalPolicy                string `json:"legalPolicy"`
	MaxDutyWithoutBreakMinutes int    `json:"maxDutyWithoutBreakMinutes"`
	MinBreakMinutes            int    `json:"minBreakMinutes"`
}

// Load reads the settings from disk. A missing file yields the defaults.
func (f *FileRepository) Load() (domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var persisted persistedData
	if err := json.Unmarshal(data, &persisted); err != nil {
		return domain.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	settings := domain.DefaultSettings()
	if persisted.LegalPolicy != "" {
		policy, err := domain.ParseLegalPolicy(persisted.LegalPolicy)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("settings %s: %w", f.path, err)
		}
		settings.LegalPolicy = policy
	}
	// Apply defaults if necessary
	if persisted.MaxDutyWithoutBreakMinutes > 0 {
		settings.MaxDutyWithoutBreak = persisted.MaxDutyWithoutBreakMinutes
	}
	if persisted.MinBreakMinutes > 0 {
		settings.MinBreak = persisted.MinBreakMinutes
	}

	return settings, nil
}

// Save persists the settings to disk.
func (f *FileRepository) Save(settings domain.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	persisted := persistedData{
		LegalPolicy:                string(settings.LegalPolicy),
		MaxDutyWithoutBreakMinutes: settings.MaxDutyWithoutBreak,
		MinBreakMinutes:            settings.MinBreak,
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Atomic write
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "duty-validator", "settings.json")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "duty-validator-settings.json")
}
