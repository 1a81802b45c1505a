package unlock

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the single consent flag across sessions
type Store interface {
	Load() (bool, error)
	Save(granted bool) error
}

// MemoryStore keeps the flag in-process, for tests and for hosts that
// do not want persistence
type MemoryStore struct {
	mu      sync.Mutex
	granted bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.granted, nil
}

func (m *MemoryStore) Save(granted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.granted = granted
	return nil
}

type consentRecord struct {
	SoundEnabled bool `json:"soundEnabled"`
}

// FileStore persists the flag as a small JSON file. A missing file
// means no consent yet and is not an error.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStorePath places the flag under the user config directory
func DefaultStorePath(appName string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "sound.json"), nil
}

func (f *FileStore) Load() (bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	var rec consentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return false, err
	}
	return rec.SoundEnabled, nil
}

func (f *FileStore) Save(granted bool) error {
	data, err := json.Marshal(consentRecord{SoundEnabled: granted})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
