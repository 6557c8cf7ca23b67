package config

import (
	"os"
	"path/filepath"
	"strings"
)

// RecallPath returns the search-id recall snapshot path for a config
// location. A project-local config (.riceinspect/config.yaml) keeps it
// alongside; anything else uses ~/.config/riceinspect/history.json.
func RecallPath(configPath string) string {
	return siblingPath(configPath, "history.json")
}

// LogPath returns the default debug log path for a config location.
func LogPath(configPath string) string {
	return siblingPath(configPath, "riceinspect.log")
}

func siblingPath(configPath, name string) string {
	fallback := filepath.Join(UserDir(), name)
	if UserDir() == "" {
		fallback = filepath.Join(os.TempDir(), "riceinspect", name)
	}
	if configPath == "" {
		return fallback
	}

	clean := filepath.Clean(configPath)
	if strings.HasSuffix(clean, DefaultConfigPath()) {
		return filepath.Join(filepath.Dir(clean), name)
	}
	return fallback
}

const defaultConfigTemplate = `# riceinspect configuration
# Every key can be overridden with RICEINSPECT_<SECTION>_<KEY>, e.g.
# RICEINSPECT_API_BASE_URL=http://inspection.local:3001

api:
  # Root URL of the record service.
  base_url: http://localhost:3001
  # Per-request timeout.
  timeout: 10s

history:
  # Rows per page on first load (10, 20, 50 or 100).
  page_size: 10
  # Number of searched ids kept for up/down recall.
  recall_size: 50
  # Keep recalled ids between sessions.
  persist_recall: true

ui:
  show_status_bar: true

export:
  # Where TUI exports (history sheets, PDF reports) are written.
  dir: .
  # TrueType font for PDF reports; needed for Thai standard names.
  font_file: ""

log:
  # Only used with --debug.
  level: debug
  format: console
`

// WriteDefaultConfig writes the commented default configuration to path,
// creating parent directories.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigTemplate), 0o600)
}
