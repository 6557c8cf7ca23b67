package recall

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const snapshotVersion = 1

type snapshot struct {
	Version   int      `json:"version"`
	MaxSize   int      `json:"max_size"`
	Entries   []string `json:"entries"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// Load reads a snapshot written by Save. A missing file or empty path gives
// an empty list sized maxSize.
func Load(path string, maxSize int) (*List, error) {
	l := New(maxSize)
	if path == "" {
		return l, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l, nil
		}
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported recall snapshot version %d", snap.Version)
	}
	for _, e := range snap.Entries {
		l.Add(e)
	}
	return l, nil
}

// Save writes l to path through a temp file and rename.
func Save(path string, l *List) error {
	if l == nil {
		return errors.New("recall list is nil")
	}
	if path == "" {
		return errors.New("recall path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot{
		Version:   snapshotVersion,
		MaxSize:   l.maxSize,
		Entries:   l.Entries(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
